package cron

import (
	"Nimbus/internal/api/config"
	"Nimbus/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	tokenRefreshJob *job.TokenRefreshJob
	roomSyncJob     *job.RoomSyncJob
}

func NewCronManager(tokenRefreshJob *job.TokenRefreshJob, roomSyncJob *job.RoomSyncJob) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		tokenRefreshJob: tokenRefreshJob,
		roomSyncJob:     roomSyncJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	cfg := config.Cfg.Cron

	tokenSpec := cfg.TokenRefreshSpec
	if tokenSpec == "" {
		tokenSpec = "@every 10m"
	}
	if _, err := s.engine.AddJob(tokenSpec, s.tokenRefreshJob); err != nil {
		return err
	}

	roomSpec := cfg.RoomSyncSpec
	if roomSpec == "" {
		roomSpec = "@every 5m"
	}
	if _, err := s.engine.AddJob(roomSpec, s.roomSyncJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
