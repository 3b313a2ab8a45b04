package dto

import "github.com/goccy/go-json"

// EventEnvelope 实时事件信封，data 延迟到按事件名确定类型后再解码
type EventEnvelope struct {
	Event string          `json:"event" validate:"required"`
	Data  json.RawMessage `json:"data" validate:"required"`
}

// MessageRecalledEvent 消息撤回事件负载
type MessageRecalledEvent struct {
	RoomID    string `json:"roomId" validate:"required"`
	MessageID string `json:"messageId" validate:"required"`
}

// RoomEvent 房间创建/更新事件负载，可携带一条随路系统消息
type RoomEvent struct {
	Room          *RoomDTO    `json:"room" validate:"required"`
	SystemMessage *MessageDTO `json:"systemMessage,omitempty"`
}

// MemberEvent 成员增删/角色变更事件负载
// Room 为变更后的完整房间；本地用户被移出群时服务端不再下发 Room，仅有 roomId
type MemberEvent struct {
	RoomID        string      `json:"roomId" validate:"required"`
	UserID        string      `json:"userId" validate:"required"`
	Role          string      `json:"role,omitempty"`
	Room          *RoomDTO    `json:"room,omitempty"`
	SystemMessage *MessageDTO `json:"systemMessage,omitempty"`
}

// UserStatusEvent 在线状态事件负载
type UserStatusEvent struct {
	UserID   string `json:"userId" validate:"required"`
	IsOnline bool   `json:"isOnline"`
}
