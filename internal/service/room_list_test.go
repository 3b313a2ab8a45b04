package service

import (
	"Nimbus/internal/model"
	"testing"
	"time"
)

func room(id, name string) *model.Room {
	return &model.Room{
		RoomID:   id,
		RoomType: model.RoomTypeGroup,
		Name:     name,
		Participants: []*model.Participant{
			{UserID: "u1", Name: "一号", Role: model.RoleOwner, Status: model.StatusOffline},
			{UserID: "u2", Name: "二号", Role: model.RoleMember, Status: model.StatusOffline},
		},
	}
}

func orderOf(s RoomListStore) []string {
	var ids []string
	for _, r := range s.Rooms() {
		ids = append(ids, r.RoomID)
	}
	return ids
}

func TestUpsertMovesToFront(t *testing.T) {
	store := NewRoomListStore()
	// C 最近活跃，列表为 [C, B, A]
	store.LoadInitial([]*model.Room{room("C", "c"), room("B", "b"), room("A", "a")})

	store.Upsert(room("A", "a"))

	got := orderOf(store)
	want := []string{"A", "C", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestUpsertInsertsUnknownAtFront(t *testing.T) {
	store := NewRoomListStore()
	store.LoadInitial([]*model.Room{room("B", "b")})

	store.Upsert(room("A", "a"))
	if got := orderOf(store); got[0] != "A" {
		t.Fatalf("new room not at front: %v", got)
	}
	if store.Len() != 2 {
		t.Fatalf("len = %d", store.Len())
	}
}

func TestUpsertShallowMergeKeepsAbsentFields(t *testing.T) {
	store := NewRoomListStore()
	full := room("A", "旧名字")
	full.Theme = "dark"
	full.RoomImgURL = "img.png"
	store.LoadInitial([]*model.Room{full})

	// 仅携带名称的增量更新
	store.Upsert(&model.Room{RoomID: "A", RoomType: model.RoomTypeGroup, Name: "新名字"})

	merged, ok := store.Get("A")
	if !ok {
		t.Fatalf("room lost after upsert")
	}
	if merged.Name != "新名字" {
		t.Fatalf("incoming field not applied: %s", merged.Name)
	}
	if merged.Theme != "dark" || merged.RoomImgURL != "img.png" {
		t.Fatalf("absent fields overwritten: %+v", merged)
	}
	if len(merged.Participants) != 2 {
		t.Fatalf("participants lost on partial upsert")
	}
}

func TestApplyLastMessagePreviewReorders(t *testing.T) {
	store := NewRoomListStore()
	store.LoadInitial([]*model.Room{room("C", "c"), room("B", "b"), room("A", "a")})

	ok := store.ApplyLastMessagePreview("B", model.LastMessagePreview{
		MessageID: "m1",
		Content:   "最新消息",
		Type:      model.MsgTypeText,
		SenderID:  "u1",
		SentAt:    time.Now(),
	})
	if !ok {
		t.Fatalf("preview update missed existing room")
	}
	if got := orderOf(store); got[0] != "B" {
		t.Fatalf("preview update did not reorder: %v", got)
	}
	b, _ := store.Get("B")
	if b.LastMessage.Content != "最新消息" {
		t.Fatalf("preview not applied: %+v", b.LastMessage)
	}
}

func TestApplyLastMessagePreviewUnknownRoom(t *testing.T) {
	store := NewRoomListStore()
	if store.ApplyLastMessagePreview("missing", model.LastMessagePreview{}) {
		t.Fatalf("preview update on unknown room reported applied")
	}
}

func TestRemoveByRoomIDClearsActive(t *testing.T) {
	store := NewRoomListStore()
	store.LoadInitial([]*model.Room{room("A", "a"), room("B", "b")})
	store.SetActive(model.RoomContext{RoomID: "A"})

	store.RemoveByRoomID("A")

	if store.Len() != 1 {
		t.Fatalf("room not removed")
	}
	if !store.Active().Empty() {
		t.Fatalf("active selection not cleared")
	}
}

func TestRemoveByRoomIDKeepsOtherActive(t *testing.T) {
	store := NewRoomListStore()
	store.LoadInitial([]*model.Room{room("A", "a"), room("B", "b")})
	store.SetActive(model.RoomContext{RoomID: "B"})

	store.RemoveByRoomID("A")
	if store.Active().RoomID != "B" {
		t.Fatalf("unrelated removal cleared selection")
	}
}

func TestSetParticipantStatusBroadcast(t *testing.T) {
	store := NewRoomListStore()
	store.LoadInitial([]*model.Room{room("A", "a"), room("B", "b")})

	touched := store.SetParticipantStatus("u2", model.StatusOnline)
	if touched != 2 {
		t.Fatalf("expected 2 rooms touched, got %d", touched)
	}
	a, _ := store.Get("A")
	if p, _ := a.FindParticipant("u2"); p.Status != model.StatusOnline {
		t.Fatalf("status not applied")
	}
	// 未加载的用户不报错
	if n := store.SetParticipantStatus("ghost", model.StatusOnline); n != 0 {
		t.Fatalf("ghost user touched %d rooms", n)
	}
}
