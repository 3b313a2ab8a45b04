package model

import (
	"errors"
	"time"
)

// RoomType 房间类型
type RoomType string

const (
	RoomTypeDirect RoomType = "DIRECT"
	RoomTypeGroup  RoomType = "GROUP"
)

// Role 群内角色
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// PresenceStatus 在线状态
type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "ONLINE"
	StatusOffline PresenceStatus = "OFFLINE"
)

// Participant 房间成员，状态位由在线事件原地更新
type Participant struct {
	UserID    string         `json:"userId"`
	Name      string         `json:"name"`
	AvatarURL string         `json:"avatarUrl"`
	Role      Role           `json:"role"`
	Status    PresenceStatus `json:"status"`
}

// LastMessagePreview 会话列表上冗余的最后一条消息预览
type LastMessagePreview struct {
	MessageID string    `json:"messageId"`
	Content   string    `json:"content"`
	Type      MsgType   `json:"type"`
	SenderID  string    `json:"senderId"`
	SentAt    time.Time `json:"sentAt"`
}

// Room 会话摘要
type Room struct {
	RoomID       string             `json:"roomId"`
	RoomType     RoomType           `json:"roomType"`
	Name         string             `json:"name"`
	RoomImgURL   string             `json:"roomImgUrl"`
	Theme        string             `json:"theme"`
	Participants []*Participant     `json:"participants"`
	LastMessage  LastMessagePreview `json:"lastMessage"`
}

var (
	errDirectParticipants = errors.New("单聊房间成员数必须为 2")
	errGroupOwnerCount    = errors.New("群聊房间必须有且仅有一个群主")
)

// Validate 校验房间结构不变量：单聊恰好两人，群聊恰好一个 OWNER
func (r *Room) Validate() error {
	switch r.RoomType {
	case RoomTypeDirect:
		if len(r.Participants) != 2 {
			return errDirectParticipants
		}
	case RoomTypeGroup:
		owners := 0
		for _, p := range r.Participants {
			if p.Role == RoleOwner {
				owners++
			}
		}
		if owners != 1 {
			return errGroupOwnerCount
		}
	}
	return nil
}

// HasParticipant 判断用户是否为房间成员
func (r *Room) HasParticipant(userID string) bool {
	for _, p := range r.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// FindParticipant 按用户 ID 查找成员
func (r *Room) FindParticipant(userID string) (*Participant, bool) {
	for _, p := range r.Participants {
		if p.UserID == userID {
			return p, true
		}
	}
	return nil, false
}
