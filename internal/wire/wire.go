package wire

import (
	"Nimbus/internal/api"
	"Nimbus/internal/api/config"
	"Nimbus/internal/api/handler"
	"Nimbus/internal/job"
	"Nimbus/internal/live"
	"Nimbus/internal/pkg/consts"
	"Nimbus/internal/pkg/cron"
	"Nimbus/internal/repository"
	"Nimbus/internal/service"
	"Nimbus/internal/session"

	"github.com/gin-gonic/gin"
)

// ApplicationContainer 封装了客户端运行所需的所有顶级组件
type ApplicationContainer struct {
	Router     *gin.Engine
	Source     *live.Source
	CronMgr    *cron.Manager
	API        repository.ChatAPI
	Session    session.Provider
	Rooms      service.RoomListStore
	Contacts   service.ContactListStore
	Messages   service.MessageStore
	Pagination service.PaginationController
	Sender     service.MessageSender
}

func BuildApplication(cfg *config.Config) (*ApplicationContainer, error) {
	sess := session.NewProvider()
	chatAPI := repository.NewChatAPI(&cfg.API)

	rooms := service.NewRoomListStore()
	contacts := service.NewContactListStore()
	messages := service.NewMessageStore(rooms, sess)

	historyPageSize := cfg.Paging.HistoryPageSize
	if historyPageSize <= 0 {
		historyPageSize = consts.DefaultHistoryPageSize
	}
	pagination := service.NewPaginationController(chatAPI, messages, historyPageSize)
	sender := service.NewMessageSender(chatAPI, messages, rooms, sess)
	presence := service.NewPresenceOverlay(rooms, contacts)

	router := live.NewRouter(messages, rooms, presence, sess)
	source := live.NewSource(&cfg.WS, sess, router, rooms)

	handlers := &api.HandlersGroup{
		StatusHandler: handler.NewStatusHandler(source, rooms, messages, pagination, sess),
	}
	opsRouter := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewTokenRefreshJob(chatAPI, sess),
		job.NewRoomSyncJob(chatAPI, rooms),
	)

	return &ApplicationContainer{
		Router:     opsRouter,
		Source:     source,
		CronMgr:    cronMgr,
		API:        chatAPI,
		Session:    sess,
		Rooms:      rooms,
		Contacts:   contacts,
		Messages:   messages,
		Pagination: pagination,
		Sender:     sender,
	}, nil
}
