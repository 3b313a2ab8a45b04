package service

import (
	"Nimbus/internal/model"
	log "log/slog"
)

// PresenceOverlay 把单用户上下线事件广播到所有已加载的成员视图
// 逐房间逐成员线性扫描，事件频率与列表规模都在 UI 量级，无需索引
type PresenceOverlay interface {
	Apply(userID string, isOnline bool)
}

type presenceOverlayImpl struct {
	rooms    RoomListStore
	contacts ContactListStore
}

// NewPresenceOverlay 构造函数
func NewPresenceOverlay(rooms RoomListStore, contacts ContactListStore) PresenceOverlay {
	return &presenceOverlayImpl{rooms: rooms, contacts: contacts}
}

func (s *presenceOverlayImpl) Apply(userID string, isOnline bool) {
	status := model.StatusOffline
	if isOnline {
		status = model.StatusOnline
	}

	touched := s.rooms.SetParticipantStatus(userID, status)
	s.contacts.SetStatus(userID, status)

	log.Debug("在线状态已广播", "userId", userID, "status", status, "rooms_touched", touched)
}
