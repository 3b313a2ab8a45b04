package service

import (
	"Nimbus/internal/model"
	"Nimbus/internal/pkg/metrics"
	log "log/slog"
	"sync"
	"time"
)

// ParticipantDirectory 成员归属查询，由 RoomListStore 实现
type ParticipantDirectory interface {
	IsParticipant(roomID, userID string) bool
}

// Identity 本地会话身份，用于判定消息是否为本人回显
type Identity interface {
	UserID() string
}

// MessageStore 当前激活房间的消息列表
// 独占持有该房间的内存消息集；切换房间即丢弃重建
type MessageStore interface {
	// SwitchRoom 切换激活房间，清空已有列表
	SwitchRoom(rc model.RoomContext)
	// ActiveRoom 当前激活房间上下文
	ActiveRoom() model.RoomContext
	// LoadInitial 整体替换列表，用于切换房间后的首次拉取
	LoadInitial(messages []*model.Message)
	// Prepend 头部插入更早的一页，按 id 过滤分页边界重叠，返回实际插入数
	Prepend(older []*model.Message) int
	// AppendIncoming 按接收规则追加实时到达的消息，拒收时返回 false
	AppendIncoming(m *model.Message) bool
	// AppendLocal 乐观插入本地发送的消息，仅按 clientMsgId 去重
	AppendLocal(m *model.Message) bool
	// ConfirmLocal 用服务端分配的 id 确认本地乐观消息
	ConfirmLocal(clientMsgID, serverID string, createdAt time.Time) bool
	// DropLocal 发送失败时移除乐观消息
	DropLocal(clientMsgID string)
	// MarkRecalled 将指定消息置为已撤回；消息未加载时为空操作
	MarkRecalled(messageID string) bool
	// Messages 当前列表快照，从旧到新
	Messages() []*model.Message
	Len() int
}

type messageStoreImpl struct {
	mu       sync.Mutex
	room     model.RoomContext
	list     []*model.Message
	byID     map[string]*model.Message
	byClient map[string]*model.Message
	dir      ParticipantDirectory
	ident    Identity
}

// NewMessageStore 构造函数
func NewMessageStore(dir ParticipantDirectory, ident Identity) MessageStore {
	return &messageStoreImpl{
		byID:     make(map[string]*model.Message),
		byClient: make(map[string]*model.Message),
		dir:      dir,
		ident:    ident,
	}
}

func (s *messageStoreImpl) SwitchRoom(rc model.RoomContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room = rc
	s.list = nil
	s.byID = make(map[string]*model.Message)
	s.byClient = make(map[string]*model.Message)
}

func (s *messageStoreImpl) ActiveRoom() model.RoomContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

func (s *messageStoreImpl) LoadInitial(messages []*model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
	s.byID = make(map[string]*model.Message)
	s.byClient = make(map[string]*model.Message)
	for _, m := range messages {
		if _, ok := s.byID[m.ID]; ok {
			continue
		}
		s.list = append(s.list, m)
		s.index(m)
	}
}

func (s *messageStoreImpl) Prepend(older []*model.Message) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make([]*model.Message, 0, len(older))
	for _, m := range older {
		if _, ok := s.byID[m.ID]; ok {
			continue
		}
		fresh = append(fresh, m)
		s.index(m)
	}
	if len(fresh) == 0 {
		return 0
	}
	s.list = append(fresh, s.list...)
	return len(fresh)
}

// AppendIncoming 接收规则按序评估：
// 1. 房间不匹配拒收（面向其他房间监听者的事件）
// 2. 非系统消息要求发送者是当前成员，否则视为失效事件拒收
// 3. 本人消息拒收，发送路径已独立更新本地状态
// 4. id 或 clientMsgId 已存在拒收（发送响应与实时推送可能各到一次）
// 5. 按到达顺序追加至尾部，实时路径不做时间戳重排
func (s *messageStoreImpl) AppendIncoming(m *model.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.Matches(m.RoomID) {
		log.Debug("消息不属于激活房间，丢弃", "roomId", m.RoomID, "msgId", m.ID)
		return false
	}
	if !m.IsSystem() && !s.dir.IsParticipant(m.RoomID, m.SenderID) {
		log.Debug("发送者不在房间内，丢弃", "roomId", m.RoomID, "senderId", m.SenderID)
		return false
	}
	if m.SenderID != "" && m.SenderID == s.ident.UserID() {
		return false
	}
	if _, ok := s.byID[m.ID]; ok {
		metrics.MessagesDeduplicated.Inc()
		return false
	}
	if m.ClientMsgID != "" {
		if _, ok := s.byClient[m.ClientMsgID]; ok {
			metrics.MessagesDeduplicated.Inc()
			return false
		}
	}

	s.list = append(s.list, m)
	s.index(m)
	return true
}

func (s *messageStoreImpl) AppendLocal(m *model.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ClientMsgID != "" {
		if _, ok := s.byClient[m.ClientMsgID]; ok {
			return false
		}
	}
	s.list = append(s.list, m)
	s.index(m)
	return true
}

func (s *messageStoreImpl) ConfirmLocal(clientMsgID, serverID string, createdAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byClient[clientMsgID]
	if !ok {
		return false
	}
	if m.ID != "" {
		delete(s.byID, m.ID)
	}
	m.ID = serverID
	if !createdAt.IsZero() {
		m.CreatedAt = createdAt
	}
	s.byID[serverID] = m
	return true
}

func (s *messageStoreImpl) DropLocal(clientMsgID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byClient[clientMsgID]
	if !ok {
		return
	}
	delete(s.byClient, clientMsgID)
	if m.ID != "" {
		delete(s.byID, m.ID)
	}
	for i, cur := range s.list {
		if cur == m {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
}

func (s *messageStoreImpl) MarkRecalled(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[messageID]
	if !ok {
		// 被撤回的消息可能在尚未拉取的分页上
		return false
	}
	m.IsActive = false
	return true
}

func (s *messageStoreImpl) Messages() []*model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Message, len(s.list))
	copy(out, s.list)
	return out
}

func (s *messageStoreImpl) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

func (s *messageStoreImpl) index(m *model.Message) {
	if m.ID != "" {
		s.byID[m.ID] = m
	}
	if m.ClientMsgID != "" {
		s.byClient[m.ClientMsgID] = m
	}
}
