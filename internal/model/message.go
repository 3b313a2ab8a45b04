package model

import "time"

// MsgType 消息类型
type MsgType string

const (
	MsgTypeText    MsgType = "TEXT"
	MsgTypeImage   MsgType = "IMAGE"
	MsgTypeVideo   MsgType = "VIDEO"
	MsgTypeFile    MsgType = "FILE"
	MsgTypeWeather MsgType = "WEATHER"
	MsgTypeSystem  MsgType = "SYSTEM"
)

// Message 单条消息
// ID 由服务端分配且稳定；ClientMsgID 在发送端生成，服务端分配 ID 之前用于去重
type Message struct {
	ID          string    `json:"id"`
	ClientMsgID string    `json:"clientMsgId"`
	RoomID      string    `json:"roomId"`
	SenderID    string    `json:"senderId"`
	Type        MsgType   `json:"type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	IsActive    bool      `json:"isActive"` // 被撤回后置为 false
}

// IsSystem 系统消息不做发送者成员校验
func (m *Message) IsSystem() bool {
	return m.Type == MsgTypeSystem
}
