package dto

import (
	"Nimbus/internal/model"
	"time"
)

// SendMessageReq 发送消息请求体
type SendMessageReq struct {
	RoomID      string `json:"roomId"`
	ClientMsgID string `json:"clientMsgId"`
	Type        string `json:"type"`
	Content     string `json:"content"`
}

// RecallMessageReq 撤回消息请求体
type RecallMessageReq struct {
	RoomID    string `json:"roomId"`
	MessageID string `json:"messageId"`
}

// MessageDTO 消息明细
type MessageDTO struct {
	ID          string    `json:"id" validate:"required"`
	ClientMsgID string    `json:"clientMsgId"`
	RoomID      string    `json:"roomId" validate:"required"`
	SenderID    string    `json:"senderId"`
	Type        string    `json:"type" validate:"required"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	IsActive    *bool     `json:"isActive"`
}

// ToModel 转换为领域模型；isActive 缺省视为未撤回
func (s *MessageDTO) ToModel() *model.Message {
	active := true
	if s.IsActive != nil {
		active = *s.IsActive
	}
	return &model.Message{
		ID:          s.ID,
		ClientMsgID: s.ClientMsgID,
		RoomID:      s.RoomID,
		SenderID:    s.SenderID,
		Type:        model.MsgType(s.Type),
		Content:     s.Content,
		CreatedAt:   s.CreatedAt,
		IsActive:    active,
	}
}

// HistoryPageDTO 历史消息分页，页内按从旧到新排序
type HistoryPageDTO struct {
	MessageResponses []*MessageDTO `json:"messageResponses"`
	HasMore          bool          `json:"hasMore"`
}
