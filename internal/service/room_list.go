package service

import (
	"Nimbus/internal/model"
	log "log/slog"
	"sync"

	"github.com/jinzhu/copier"
)

// RoomListStore 会话摘要列表，始终按最近活跃优先排序
// 仅 Upsert 与预览更新会改变顺序，原地字段修改不触发重排
type RoomListStore interface {
	// LoadInitial 整体替换列表，保持服务端给定的顺序
	LoadInitial(rooms []*model.Room)
	// Upsert 按 roomId 浅合并（来者非零字段生效）并移到队首；不存在则插入队首
	Upsert(room *model.Room)
	// RemoveByRoomID 移除房间；若被移除的是激活房间则清除选中态
	RemoveByRoomID(roomID string)
	// ApplyLastMessagePreview 仅更新预览字段并移到队首，无需完整 Room 负载
	ApplyLastMessagePreview(roomID string, preview model.LastMessagePreview) bool
	// Rooms 当前顺序快照
	Rooms() []*model.Room
	Get(roomID string) (*model.Room, bool)
	// SetActive / Active 激活房间选中态
	SetActive(rc model.RoomContext)
	Active() model.RoomContext
	// IsParticipant 实现 ParticipantDirectory
	IsParticipant(roomID, userID string) bool
	// SetParticipantStatus 在线状态覆写，返回命中的成员数
	SetParticipantStatus(userID string, status model.PresenceStatus) int
	Len() int
}

type roomListStoreImpl struct {
	mu     sync.Mutex
	list   []*model.Room
	active model.RoomContext
}

// NewRoomListStore 构造函数
func NewRoomListStore() RoomListStore {
	return &roomListStoreImpl{}
}

func (s *roomListStoreImpl) LoadInitial(rooms []*model.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = make([]*model.Room, 0, len(rooms))
	seen := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		if _, ok := seen[r.RoomID]; ok {
			continue
		}
		seen[r.RoomID] = struct{}{}
		s.list = append(s.list, r)
	}
}

func (s *roomListStoreImpl) Upsert(room *model.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(room.RoomID)
	if idx < 0 {
		s.list = append([]*model.Room{room}, s.list...)
		return
	}

	existing := s.list[idx]
	if len(room.Participants) > 0 {
		// 成员集整体替换而非追加
		existing.Participants = nil
	}
	if err := copier.CopyWithOption(existing, room, copier.Option{IgnoreEmpty: true}); err != nil {
		log.Warn("房间合并失败", "roomId", room.RoomID, "err", err)
		return
	}
	s.moveToFront(idx)
}

func (s *roomListStoreImpl) RemoveByRoomID(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(roomID)
	if idx < 0 {
		return
	}
	s.list = append(s.list[:idx], s.list[idx+1:]...)
	if s.active.Matches(roomID) {
		s.active = model.RoomContext{}
	}
}

func (s *roomListStoreImpl) ApplyLastMessagePreview(roomID string, preview model.LastMessagePreview) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(roomID)
	if idx < 0 {
		return false
	}
	s.list[idx].LastMessage = preview
	s.moveToFront(idx)
	return true
}

func (s *roomListStoreImpl) Rooms() []*model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Room, len(s.list))
	copy(out, s.list)
	return out
}

func (s *roomListStoreImpl) Get(roomID string) (*model.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(roomID); idx >= 0 {
		return s.list[idx], true
	}
	return nil, false
}

func (s *roomListStoreImpl) SetActive(rc model.RoomContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = rc
}

func (s *roomListStoreImpl) Active() model.RoomContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *roomListStoreImpl) IsParticipant(roomID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(roomID); idx >= 0 {
		return s.list[idx].HasParticipant(userID)
	}
	return false
}

func (s *roomListStoreImpl) SetParticipantStatus(userID string, status model.PresenceStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	touched := 0
	for _, room := range s.list {
		if p, ok := room.FindParticipant(userID); ok {
			p.Status = status
			touched++
		}
	}
	return touched
}

func (s *roomListStoreImpl) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

func (s *roomListStoreImpl) indexOf(roomID string) int {
	for i, r := range s.list {
		if r.RoomID == roomID {
			return i
		}
	}
	return -1
}

func (s *roomListStoreImpl) moveToFront(idx int) {
	if idx == 0 {
		return
	}
	room := s.list[idx]
	copy(s.list[1:idx+1], s.list[:idx])
	s.list[0] = room
}
