package dto

import (
	"Nimbus/internal/model"
	"time"
)

// ParticipantDTO 房间成员
type ParticipantDTO struct {
	UserID    string `json:"userId" validate:"required"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// RoomDTO 会话摘要
type RoomDTO struct {
	RoomID       string            `json:"roomId" validate:"required"`
	RoomType     string            `json:"roomType" validate:"required,oneof=DIRECT GROUP"`
	Name         string            `json:"name"`
	RoomImgURL   string            `json:"roomImgUrl"`
	Theme        string            `json:"theme"`
	Participants []*ParticipantDTO `json:"participants" validate:"dive"`
	LastMessage  *LastMessageDTO   `json:"lastMessage"`
}

// LastMessageDTO 最后一条消息预览
type LastMessageDTO struct {
	MessageID string    `json:"messageId"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	SenderID  string    `json:"senderId"`
	SentAt    time.Time `json:"sentAt"`
}

// ToModel 转换为领域模型
func (s *RoomDTO) ToModel() *model.Room {
	room := &model.Room{
		RoomID:     s.RoomID,
		RoomType:   model.RoomType(s.RoomType),
		Name:       s.Name,
		RoomImgURL: s.RoomImgURL,
		Theme:      s.Theme,
	}
	for _, p := range s.Participants {
		status := model.PresenceStatus(p.Status)
		if status == "" {
			status = model.StatusOffline
		}
		room.Participants = append(room.Participants, &model.Participant{
			UserID:    p.UserID,
			Name:      p.Name,
			AvatarURL: p.AvatarURL,
			Role:      model.Role(p.Role),
			Status:    status,
		})
	}
	if s.LastMessage != nil {
		room.LastMessage = model.LastMessagePreview{
			MessageID: s.LastMessage.MessageID,
			Content:   s.LastMessage.Content,
			Type:      model.MsgType(s.LastMessage.Type),
			SenderID:  s.LastMessage.SenderID,
			SentAt:    s.LastMessage.SentAt,
		}
	}
	return room
}

// RoomPageDTO 会话列表分页
type RoomPageDTO struct {
	Content    []*RoomDTO `json:"content"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	HasMore    bool       `json:"hasMore"`
}

// UpdateRoomReq 修改房间名称/主题/头像请求体
type UpdateRoomReq struct {
	Name       string `json:"name,omitempty"`
	Theme      string `json:"theme,omitempty"`
	RoomImgURL string `json:"roomImgUrl,omitempty"`
}

// MemberReq 成员变更请求体
type MemberReq struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
}

// ContactDTO 联系人
type ContactDTO struct {
	UserID    string `json:"userId" validate:"required"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Status    string `json:"status"`
}

// ContactPageDTO 联系人分页
type ContactPageDTO struct {
	Content    []*ContactDTO `json:"content"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	HasMore    bool          `json:"hasMore"`
}
