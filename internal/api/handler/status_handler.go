package handler

import (
	"Nimbus/internal/live"
	"Nimbus/internal/pkg/response"
	"Nimbus/internal/service"
	"Nimbus/internal/session"
	"time"

	"github.com/gin-gonic/gin"
)

// StatusHandler 本地运维端点：暴露客户端核心的只读状态
type StatusHandler struct {
	source     *live.Source
	rooms      service.RoomListStore
	messages   service.MessageStore
	pagination service.PaginationController
	sess       session.Provider
	startedAt  time.Time
}

func NewStatusHandler(source *live.Source, rooms service.RoomListStore, messages service.MessageStore, pagination service.PaginationController, sess session.Provider) *StatusHandler {
	return &StatusHandler{
		source:     source,
		rooms:      rooms,
		messages:   messages,
		pagination: pagination,
		sess:       sess,
		startedAt:  time.Now(),
	}
}

// Status 连接与状态总览
func (s *StatusHandler) Status(c *gin.Context) {
	state := s.pagination.State()
	response.Success(c, gin.H{
		"connected":     s.source.Connected(),
		"userId":        s.sess.UserID(),
		"activeRoomId":  s.rooms.Active().RoomID,
		"roomCount":     s.rooms.Len(),
		"messageCount":  s.messages.Len(),
		"hasMore":       state.HasMore,
		"isLoadingMore": state.IsLoadingMore,
		"uptimeSeconds": int(time.Since(s.startedAt).Seconds()),
	})
}

// Rooms 当前会话列表快照
func (s *StatusHandler) Rooms(c *gin.Context) {
	response.Success(c, s.rooms.Rooms())
}

// Messages 激活房间的消息列表快照
func (s *StatusHandler) Messages(c *gin.Context) {
	if s.rooms.Active().Empty() {
		response.Error(c, service.ErrNoActiveRoom)
		return
	}
	response.Success(c, s.messages.Messages())
}
