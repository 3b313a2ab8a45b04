package repository

import (
	"Nimbus/internal/api/config"
	"Nimbus/internal/api/dto"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ChatAPI 后端 REST 数据访问
type ChatAPI interface {
	Login(ctx context.Context, req *dto.LoginReq) (*dto.TokenDTO, error)
	RefreshToken(ctx context.Context) (*dto.TokenDTO, error)

	GetRoomList(ctx context.Context, page, pageSize int) (*dto.RoomPageDTO, error)
	GetContactList(ctx context.Context, page, pageSize int) (*dto.ContactPageDTO, error)
	// GetChatHistory 拉取严格早于 beforeID 的一页消息；beforeID 为空时返回最新一页
	GetChatHistory(ctx context.Context, roomID, beforeID string, pageSize int) (*dto.HistoryPageDTO, error)

	SendMessage(ctx context.Context, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	RecallMessage(ctx context.Context, roomID, messageID string) error
	UpdateRoom(ctx context.Context, roomID string, req *dto.UpdateRoomReq) (*dto.RoomDTO, error)
	AddMember(ctx context.Context, req *dto.MemberReq) (*dto.RoomDTO, error)
	RemoveMember(ctx context.Context, req *dto.MemberReq) (*dto.RoomDTO, error)
	ChangeMemberRole(ctx context.Context, req *dto.MemberReq) (*dto.RoomDTO, error)

	// SetToken 设置后续请求携带的会话凭据
	SetToken(token string)
}

type chatAPIImpl struct {
	client *resty.Client
}

// NewChatAPI 构造函数
func NewChatAPI(cfg *config.APIConfig) ChatAPI {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Accept", "application/json")

	return &chatAPIImpl{client: client}
}

func (s *chatAPIImpl) SetToken(token string) {
	s.client.SetAuthToken(token)
}

func (s *chatAPIImpl) Login(ctx context.Context, req *dto.LoginReq) (*dto.TokenDTO, error) {
	var out dto.TokenDTO
	err := s.post(ctx, "/api/user/login", req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) RefreshToken(ctx context.Context) (*dto.TokenDTO, error) {
	var out dto.TokenDTO
	err := s.post(ctx, "/api/user/token/refresh", nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) GetRoomList(ctx context.Context, page, pageSize int) (*dto.RoomPageDTO, error) {
	var out dto.RoomPageDTO
	err := s.get(ctx, "/api/room/list", map[string]string{
		"page":     strconv.Itoa(page),
		"pageSize": strconv.Itoa(pageSize),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) GetContactList(ctx context.Context, page, pageSize int) (*dto.ContactPageDTO, error) {
	var out dto.ContactPageDTO
	err := s.get(ctx, "/api/contact/list", map[string]string{
		"page":     strconv.Itoa(page),
		"pageSize": strconv.Itoa(pageSize),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) GetChatHistory(ctx context.Context, roomID, beforeID string, pageSize int) (*dto.HistoryPageDTO, error) {
	params := map[string]string{
		"roomId":   roomID,
		"pageSize": strconv.Itoa(pageSize),
	}
	if beforeID != "" {
		params["beforeId"] = beforeID
	}

	var out dto.HistoryPageDTO
	err := s.get(ctx, "/api/message/history", params, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) SendMessage(ctx context.Context, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	var out dto.MessageDTO
	err := s.post(ctx, "/api/message/send", req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) RecallMessage(ctx context.Context, roomID, messageID string) error {
	return s.post(ctx, "/api/message/recall", &dto.RecallMessageReq{
		RoomID:    roomID,
		MessageID: messageID,
	}, nil)
}

func (s *chatAPIImpl) UpdateRoom(ctx context.Context, roomID string, req *dto.UpdateRoomReq) (*dto.RoomDTO, error) {
	var out dto.RoomDTO
	err := s.put(ctx, "/api/room/"+roomID, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) AddMember(ctx context.Context, req *dto.MemberReq) (*dto.RoomDTO, error) {
	var out dto.RoomDTO
	err := s.post(ctx, "/api/room/member/add", req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) RemoveMember(ctx context.Context, req *dto.MemberReq) (*dto.RoomDTO, error) {
	var out dto.RoomDTO
	err := s.post(ctx, "/api/room/member/remove", req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) ChangeMemberRole(ctx context.Context, req *dto.MemberReq) (*dto.RoomDTO, error) {
	var out dto.RoomDTO
	err := s.post(ctx, "/api/room/member/role", req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *chatAPIImpl) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	return parseEnvelope(resp, out)
}

func (s *chatAPIImpl) post(ctx context.Context, path string, body, out interface{}) error {
	req := s.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		return errors.Wrapf(err, "POST %s", path)
	}
	return parseEnvelope(resp, out)
}

func (s *chatAPIImpl) put(ctx context.Context, path string, body, out interface{}) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Put(path)
	if err != nil {
		return errors.Wrapf(err, "PUT %s", path)
	}
	return parseEnvelope(resp, out)
}

// parseEnvelope 解包统一响应 {code,message,data}，非 200 业务码转为错误
func parseEnvelope(resp *resty.Response, out interface{}) error {
	if resp.StatusCode() != http.StatusOK {
		return errors.Errorf("%s: unexpected status %d", resp.Request.URL, resp.StatusCode())
	}

	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return errors.Wrap(err, "decode response envelope")
	}
	if envelope.Code != http.StatusOK {
		return errors.Errorf("%s: code %d: %s", resp.Request.URL, envelope.Code, envelope.Message)
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return errors.Wrap(err, "decode response data")
	}
	return nil
}
