package service

import (
	"Nimbus/internal/api/dto"
	"Nimbus/internal/model"
	"Nimbus/internal/pkg/metrics"
	"context"
	log "log/slog"
	"sync"

	"github.com/pkg/errors"
)

// HistoryFetcher 历史消息拉取，由 repository.ChatAPI 提供
type HistoryFetcher interface {
	GetChatHistory(ctx context.Context, roomID, beforeID string, pageSize int) (*dto.HistoryPageDTO, error)
}

// PaginationController 驱动激活房间向更早方向的翻页
// 同一房间同时只允许一个拉取在途；hasMore=false 后直到房间重载不再发起请求
type PaginationController interface {
	// Reset 房间切换时重置翻页状态并清空消息列表
	Reset(rc model.RoomContext)
	// RequestOlder 拉取一页更早的消息：在途或已无更多时为空操作；
	// 失败时状态保持不变；响应到达时若激活房间已变化则整页丢弃
	RequestOlder(ctx context.Context, rc model.RoomContext) error
	// SetViewport 注入渲染层滚动容器，缺省时跳过滚动锚定
	SetViewport(v Viewport)
	State() model.PaginationState
}

type paginationControllerImpl struct {
	mu       sync.Mutex
	fetcher  HistoryFetcher
	store    MessageStore
	anchor   *ScrollAnchor
	viewport Viewport
	room     model.RoomContext
	state    model.PaginationState
	pageSize int
}

// NewPaginationController 构造函数
func NewPaginationController(fetcher HistoryFetcher, store MessageStore, pageSize int) PaginationController {
	return &paginationControllerImpl{
		fetcher:  fetcher,
		store:    store,
		anchor:   NewScrollAnchor(),
		state:    model.NewPaginationState(),
		pageSize: pageSize,
	}
}

func (s *paginationControllerImpl) Reset(rc model.RoomContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room = rc
	s.state = model.NewPaginationState()
	s.store.SwitchRoom(rc)
}

func (s *paginationControllerImpl) SetViewport(v Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
}

func (s *paginationControllerImpl) RequestOlder(ctx context.Context, rc model.RoomContext) error {
	s.mu.Lock()
	if rc.Empty() {
		s.mu.Unlock()
		return ErrNoActiveRoom
	}
	if !s.room.Matches(rc.RoomID) {
		s.mu.Unlock()
		return ErrRoomMismatch
	}
	if s.state.IsLoadingMore || !s.state.HasMore {
		// 在途去重：不重复发起网络请求，也避免乱序合并
		s.mu.Unlock()
		return nil
	}
	beforeID := s.state.OldestLoadedID
	s.state.IsLoadingMore = true
	s.mu.Unlock()

	page, err := s.fetcher.GetChatHistory(ctx, rc.RoomID, beforeID, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.Matches(rc.RoomID) {
		// 等待期间房间已切换：整页丢弃，且不触碰新房间的翻页状态
		log.InfoContext(ctx, "翻页响应已过期，丢弃", "roomId", rc.RoomID)
		return nil
	}
	s.state.IsLoadingMore = false

	if err != nil {
		// 失败不做任何部分合并，交由上层提示后重试
		return errors.Wrap(err, "load older messages")
	}

	msgs := make([]*model.Message, 0, len(page.MessageResponses))
	for _, m := range page.MessageResponses {
		msgs = append(msgs, m.ToModel())
	}

	if beforeID == "" {
		s.store.LoadInitial(msgs)
	} else {
		if s.viewport != nil {
			s.anchor.CaptureBeforePrepend(s.viewport)
		}
		s.store.Prepend(msgs)
		if s.viewport != nil {
			s.anchor.RestoreAfterPrepend(s.viewport)
		}
	}

	s.state.HasMore = page.HasMore
	if len(msgs) > 0 {
		// 页内从旧到新，首条即当前最早
		s.state.OldestLoadedID = msgs[0].ID
	}
	s.state.CurrentPage++
	metrics.HistoryPagesFetched.Inc()

	return nil
}

func (s *paginationControllerImpl) State() model.PaginationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
