package job

import (
	"Nimbus/internal/pkg/logger"
	"Nimbus/internal/repository"
	"Nimbus/internal/session"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// TokenRefreshJob 会话凭据续期
type TokenRefreshJob struct {
	api  repository.ChatAPI
	sess session.Provider
}

func NewTokenRefreshJob(api repository.ChatAPI, sess session.Provider) *TokenRefreshJob {
	return &TokenRefreshJob{api: api, sess: sess}
}

func (s *TokenRefreshJob) Run() {
	traceID := "job-token-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if !s.sess.ExpiresWithin(30 * time.Minute) {
		return
	}

	res, err := s.api.RefreshToken(ctx)
	if err != nil {
		log.ErrorContext(ctx, "token refresh failed", "err", err)
		return
	}
	if err := s.sess.SetToken(res.Token); err != nil {
		log.ErrorContext(ctx, "refreshed token invalid", "err", err)
		return
	}
	s.api.SetToken(res.Token)

	log.InfoContext(ctx, "TokenRefreshJob finished")
}
