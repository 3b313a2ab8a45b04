package live

import (
	"Nimbus/internal/api/config"
	"Nimbus/internal/pkg/metrics"
	"Nimbus/internal/service"
	"Nimbus/internal/session"
	"context"
	log "log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

// Source 实时事件源：维护到服务端的 websocket 连接，
// 把每条到达的事件解码后交给 Router 分发；断线按指数退避重连
type Source struct {
	cfg       *config.WSConfig
	session   session.Provider
	router    *Router
	rooms     service.RoomListStore
	validate  *validator.Validate
	connected atomic.Bool
}

// NewSource 构造函数
func NewSource(cfg *config.WSConfig, sess session.Provider, router *Router, rooms service.RoomListStore) *Source {
	return &Source{
		cfg:      cfg,
		session:  sess,
		router:   router,
		rooms:    rooms,
		validate: validator.New(),
	}
}

// Connected 当前连接状态，供运维端点读取
func (s *Source) Connected() bool {
	return s.connected.Load()
}

// Run 连接并持续消费事件流，直到 ctx 取消
func (s *Source) Run(ctx context.Context) error {
	backoff := time.Second
	maxBackoff := time.Duration(s.cfg.MaxBackoffSeconds) * time.Second
	if maxBackoff <= 0 {
		maxBackoff = 30 * time.Second
	}

	for {
		start := time.Now()
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if time.Since(start) > time.Minute {
			// 连接曾稳定存活，退避从头计
			backoff = time.Second
		}

		log.Warn("事件流连接中断，准备重连", "err", err, "backoff", backoff)
		metrics.WSReconnects.Inc()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (s *Source) runOnce(ctx context.Context) error {
	endpoint, err := url.Parse(s.cfg.URL)
	if err != nil {
		return err
	}
	q := endpoint.Query()
	q.Set("token", s.session.Token())
	endpoint.RawQuery = q.Encode()

	dialer := websocket.Dialer{
		HandshakeTimeout: time.Duration(s.cfg.HandshakeTimeout) * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	s.connected.Store(true)
	defer s.connected.Store(false)
	log.Info("事件流连接已建立", "url", s.cfg.URL)

	readTimeout := time.Duration(s.cfg.ReadTimeout) * time.Second
	if readTimeout <= 0 {
		readTimeout = 60 * time.Second
	}
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	// 心跳与取消监听
	pingInterval := time.Duration(s.cfg.PingInterval) * time.Second
	if pingInterval <= 0 {
		pingInterval = 20 * time.Second
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-done:
				return
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		ev, err := DecodeEvent(raw, s.validate)
		if err != nil {
			// 畸形事件按预期丢弃，不中断事件流
			log.WarnContext(ctx, "畸形事件已丢弃", "err", err)
			metrics.EventsDropped.WithLabelValues("malformed").Inc()
			continue
		}

		s.router.Dispatch(ctx, s.rooms.Active(), ev)
	}
}
