package repository

import (
	"Nimbus/internal/api/config"
	"Nimbus/internal/api/dto"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (ChatAPI, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := NewChatAPI(&config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
	return api, srv
}

func writeEnvelope(w http.ResponseWriter, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"message": message,
		"data":    data,
	})
}

func TestGetChatHistoryQueryParams(t *testing.T) {
	var gotQuery map[string]string
	api, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"roomId":   r.URL.Query().Get("roomId"),
			"beforeId": r.URL.Query().Get("beforeId"),
			"pageSize": r.URL.Query().Get("pageSize"),
		}
		writeEnvelope(w, 200, "success", map[string]interface{}{
			"messageResponses": []map[string]interface{}{
				{"id": "10", "roomId": "room1", "senderId": "alice", "type": "TEXT", "content": "早", "createdAt": "2026-08-29T10:00:00Z"},
				{"id": "11", "roomId": "room1", "senderId": "bob", "type": "TEXT", "content": "晚", "createdAt": "2026-08-29T10:01:00Z"},
			},
			"hasMore": true,
		})
	})

	page, err := api.GetChatHistory(context.Background(), "room1", "12", 20)
	if err != nil {
		t.Fatalf("GetChatHistory: %v", err)
	}
	if gotQuery["roomId"] != "room1" || gotQuery["beforeId"] != "12" || gotQuery["pageSize"] != "20" {
		t.Fatalf("query params: %v", gotQuery)
	}
	if len(page.MessageResponses) != 2 || !page.HasMore {
		t.Fatalf("page decode: %+v", page)
	}
	if page.MessageResponses[0].ID != "10" {
		t.Fatalf("first message id: %s", page.MessageResponses[0].ID)
	}
}

func TestGetChatHistoryOmitsEmptyCursor(t *testing.T) {
	var hasBefore bool
	api, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasBefore = r.URL.Query()["beforeId"]
		writeEnvelope(w, 200, "success", map[string]interface{}{
			"messageResponses": []map[string]interface{}{},
			"hasMore":          false,
		})
	})

	if _, err := api.GetChatHistory(context.Background(), "room1", "", 20); err != nil {
		t.Fatalf("GetChatHistory: %v", err)
	}
	if hasBefore {
		t.Fatalf("empty cursor must not be sent")
	}
}

func TestBusinessErrorCodeBecomesError(t *testing.T) {
	api, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 404, "房间不存在", nil)
	})

	_, err := api.GetRoomList(context.Background(), 1, 10)
	if err == nil {
		t.Fatalf("business code 404 must yield error")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("error lost code: %v", err)
	}
}

func TestUnexpectedHTTPStatus(t *testing.T) {
	api, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := api.GetRoomList(context.Background(), 1, 10); err == nil {
		t.Fatalf("502 must yield error")
	}
}

func TestSendMessageCarriesToken(t *testing.T) {
	var gotAuth string
	var gotReq dto.SendMessageReq
	api, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		writeEnvelope(w, 200, "success", map[string]interface{}{
			"id": "42", "clientMsgId": gotReq.ClientMsgID, "roomId": gotReq.RoomID,
			"senderId": "me", "type": "TEXT", "content": gotReq.Content,
			"createdAt": "2026-08-29T10:02:00Z",
		})
	})
	api.SetToken("token-abc")

	out, err := api.SendMessage(context.Background(), &dto.SendMessageReq{
		RoomID:      "room1",
		ClientMsgID: "abc",
		Type:        "TEXT",
		Content:     "你好",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if gotAuth != "Bearer token-abc" {
		t.Fatalf("auth header: %s", gotAuth)
	}
	if gotReq.ClientMsgID != "abc" {
		t.Fatalf("request body lost clientMsgId")
	}
	if out.ID != "42" {
		t.Fatalf("server id: %s", out.ID)
	}
}

func TestRecallMessageEmptyData(t *testing.T) {
	api, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: %s", r.Method)
		}
		writeEnvelope(w, 200, "success", nil)
	})

	if err := api.RecallMessage(context.Background(), "room1", "42"); err != nil {
		t.Fatalf("RecallMessage: %v", err)
	}
}
