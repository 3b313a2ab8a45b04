package job

import (
	"Nimbus/internal/api/config"
	"Nimbus/internal/model"
	"Nimbus/internal/pkg/consts"
	"Nimbus/internal/pkg/logger"
	"Nimbus/internal/repository"
	"Nimbus/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// RoomSyncJob 周期性全量刷新会话列表
// 实时事件丢失造成的脏列表靠这次成功拉取自愈
type RoomSyncJob struct {
	api   repository.ChatAPI
	rooms service.RoomListStore
}

func NewRoomSyncJob(api repository.ChatAPI, rooms service.RoomListStore) *RoomSyncJob {
	return &RoomSyncJob{api: api, rooms: rooms}
}

func (s *RoomSyncJob) Run() {
	traceID := "job-roomsync-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	pageSize := config.Cfg.Paging.RoomPageSize
	if pageSize <= 0 {
		pageSize = consts.DefaultRoomPageSize
	}

	var all []*model.Room
	page := 0
	for {
		res, err := s.api.GetRoomList(ctx, page, pageSize)
		if err != nil {
			// 失败保留旧列表，等下个周期
			log.ErrorContext(ctx, "room list sync failed", "page", page, "err", err)
			return
		}
		for _, r := range res.Content {
			all = append(all, r.ToModel())
		}
		if !res.HasMore {
			break
		}
		page++
	}

	s.rooms.LoadInitial(all)
	log.InfoContext(ctx, "RoomSyncJob finished", "room_count", len(all))
}
