package main

import (
	"Nimbus/internal/api/config"
	"Nimbus/internal/api/dto"
	"Nimbus/internal/model"
	"Nimbus/internal/pkg/consts"
	"Nimbus/internal/pkg/cron"
	"Nimbus/internal/pkg/logger"
	"Nimbus/internal/wire"
	"context"
	"errors"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	logger.InitLogger()

	// 依赖注入
	app, err := wire.BuildApplication(cfg)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	// 建立会话
	if err = establishSession(app, cfg); err != nil {
		log.Error("Fatal error: failed to establish session", "err", err)
		panic(err)
	}

	// 首次全量同步会话与联系人列表
	if err = initialSync(app, cfg); err != nil {
		log.Error("Fatal error: initial sync failed", "err", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	err = cron.InitCron(app.CronMgr)
	if err != nil {
		log.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Cron Jobs stopping...")
		app.CronMgr.Stop()
		return nil
	})

	// 实时事件流
	g.Go(func() error {
		log.Info("Live event source starting...")
		return app.Source.Run(ctx)
	})

	// 本地运维端点
	srv := &http.Server{
		Addr:    cfg.Ops.Addr,
		Handler: app.Router,
	}
	g.Go(func() error {
		log.Info("Ops endpoint starting...", "addr", cfg.Ops.Addr)
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err = srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Ops endpoint shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	log.Info("App exited successfully.")
}

// establishSession 配置给定 token 则直接使用，否则用账号密码登录
func establishSession(app *wire.ApplicationContainer, cfg *config.Config) error {
	token := cfg.Session.Token
	if token == "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		res, err := app.API.Login(ctx, &dto.LoginReq{
			Username: cfg.Session.Username,
			Password: cfg.Session.Password,
		})
		if err != nil {
			return err
		}
		token = res.Token
	}

	if err := app.Session.SetToken(token); err != nil {
		return err
	}
	app.API.SetToken(token)
	log.Info("Session established", "userId", app.Session.UserID())
	return nil
}

func initialSync(app *wire.ApplicationContainer, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	roomPageSize := cfg.Paging.RoomPageSize
	if roomPageSize <= 0 {
		roomPageSize = consts.DefaultRoomPageSize
	}
	var rooms []*model.Room
	page := 0
	for {
		res, err := app.API.GetRoomList(ctx, page, roomPageSize)
		if err != nil {
			return err
		}
		for _, r := range res.Content {
			rooms = append(rooms, r.ToModel())
		}
		if !res.HasMore {
			break
		}
		page++
	}
	app.Rooms.LoadInitial(rooms)

	contactPageSize := cfg.Paging.ContactPageSize
	if contactPageSize <= 0 {
		contactPageSize = consts.DefaultContactPageSize
	}
	var contacts []*model.Participant
	page = 0
	for {
		res, err := app.API.GetContactList(ctx, page, contactPageSize)
		if err != nil {
			return err
		}
		for _, c := range res.Content {
			status := model.PresenceStatus(c.Status)
			if status == "" {
				status = model.StatusOffline
			}
			contacts = append(contacts, &model.Participant{
				UserID:    c.UserID,
				Name:      c.Name,
				AvatarURL: c.AvatarURL,
				Status:    status,
			})
		}
		if !res.HasMore {
			break
		}
		page++
	}
	app.Contacts.LoadInitial(contacts)

	log.Info("Initial sync finished", "rooms", len(rooms), "contacts", len(contacts))
	return nil
}
