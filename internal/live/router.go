package live

import (
	"Nimbus/internal/model"
	"Nimbus/internal/pkg/metrics"
	"Nimbus/internal/service"
	"context"
	log "log/slog"
)

// Router 实时事件分发表
// 每类事件只落到固定的汇入点组合；处理器内部的任何 panic 不会越过
// Dispatch，也不会影响后续无关事件的处理
type Router struct {
	messages service.MessageStore
	rooms    service.RoomListStore
	presence service.PresenceOverlay
	ident    service.Identity
}

// NewRouter 构造函数
func NewRouter(messages service.MessageStore, rooms service.RoomListStore, presence service.PresenceOverlay, ident service.Identity) *Router {
	return &Router{
		messages: messages,
		rooms:    rooms,
		presence: presence,
		ident:    ident,
	}
}

// Dispatch 分发一个事件；active 为调用方显式传入的激活房间上下文
func (s *Router) Dispatch(ctx context.Context, active model.RoomContext, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "事件处理器 panic，事件已丢弃", "event", ev.Name(), "panic", r)
			metrics.EventsDropped.WithLabelValues("panic").Inc()
		}
	}()

	switch e := ev.(type) {
	case MessageCreated:
		s.onMessageCreated(active, e)
	case MessageRecalled:
		s.onMessageRecalled(active, e)
	case RoomCreated:
		s.rooms.Upsert(e.Room)
	case RoomUpdated:
		s.onRoomUpdated(active, e)
	case MemberChanged:
		s.onMemberChanged(active, e)
	case UserStatus:
		s.presence.Apply(e.UserID, e.Online)
	default:
		log.WarnContext(ctx, "未注册的事件类型，丢弃", "event", ev.Name())
		metrics.EventsDropped.WithLabelValues("unhandled").Inc()
		return
	}

	metrics.EventsDispatched.WithLabelValues(ev.Name()).Inc()
}

func (s *Router) onMessageCreated(active model.RoomContext, e MessageCreated) {
	m := e.Message
	s.rooms.ApplyLastMessagePreview(m.RoomID, model.LastMessagePreview{
		MessageID: m.ID,
		Content:   m.Content,
		Type:      m.Type,
		SenderID:  m.SenderID,
		SentAt:    m.CreatedAt,
	})

	if active.Matches(m.RoomID) {
		s.messages.AppendIncoming(m)
	}
}

func (s *Router) onMessageRecalled(active model.RoomContext, e MessageRecalled) {
	if active.Matches(e.RoomID) {
		s.messages.MarkRecalled(e.MessageID)
	}
}

func (s *Router) onRoomUpdated(active model.RoomContext, e RoomUpdated) {
	s.rooms.Upsert(e.Room)
	if e.SystemMessage != nil && active.Matches(e.SystemMessage.RoomID) {
		s.messages.AppendIncoming(e.SystemMessage)
	}
}

func (s *Router) onMemberChanged(active model.RoomContext, e MemberChanged) {
	if e.Change == MemberRemoved && e.UserID == s.ident.UserID() {
		// 本地用户被移出：连同选中态一起清理
		s.rooms.RemoveByRoomID(e.RoomID)
		return
	}

	if e.Room != nil {
		s.rooms.Upsert(e.Room)
	}
	if e.SystemMessage != nil && active.Matches(e.SystemMessage.RoomID) {
		s.messages.AppendIncoming(e.SystemMessage)
	}
}
