package service

import (
	"Nimbus/internal/api/dto"
	"Nimbus/internal/model"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MessageAPI 消息相关的后端变更接口，由 repository.ChatAPI 提供
type MessageAPI interface {
	SendMessage(ctx context.Context, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	RecallMessage(ctx context.Context, roomID, messageID string) error
}

// MessageSender 发送路径：乐观插入本地消息，再用服务端分配的 id 校准
// 实时推送的本人回显由 MessageStore 的接收规则拒收，不会出现重复气泡
type MessageSender interface {
	Send(ctx context.Context, rc model.RoomContext, msgType model.MsgType, content string) (*model.Message, error)
	Recall(ctx context.Context, rc model.RoomContext, messageID string) error
}

type messageSenderImpl struct {
	api   MessageAPI
	store MessageStore
	rooms RoomListStore
	ident Identity
}

// NewMessageSender 构造函数
func NewMessageSender(api MessageAPI, store MessageStore, rooms RoomListStore, ident Identity) MessageSender {
	return &messageSenderImpl{api: api, store: store, rooms: rooms, ident: ident}
}

func (s *messageSenderImpl) Send(ctx context.Context, rc model.RoomContext, msgType model.MsgType, content string) (*model.Message, error) {
	if rc.Empty() {
		return nil, ErrNoActiveRoom
	}
	if content == "" {
		return nil, ErrParamInvalid
	}

	msg := &model.Message{
		ClientMsgID: uuid.NewString(),
		RoomID:      rc.RoomID,
		SenderID:    s.ident.UserID(),
		Type:        msgType,
		Content:     content,
		CreatedAt:   time.Now(),
		IsActive:    true,
	}

	if s.store.ActiveRoom().Matches(rc.RoomID) {
		s.store.AppendLocal(msg)
	}

	res, err := s.api.SendMessage(ctx, &dto.SendMessageReq{
		RoomID:      rc.RoomID,
		ClientMsgID: msg.ClientMsgID,
		Type:        string(msgType),
		Content:     content,
	})
	if err != nil {
		// 发送失败回滚乐观插入，保证失败路径状态不变
		s.store.DropLocal(msg.ClientMsgID)
		log.ErrorContext(ctx, "消息发送失败", "roomId", rc.RoomID, "err", err)
		return nil, errors.Wrap(ErrSendFailed, err.Error())
	}

	s.store.ConfirmLocal(msg.ClientMsgID, res.ID, res.CreatedAt)
	msg.ID = res.ID

	s.rooms.ApplyLastMessagePreview(rc.RoomID, model.LastMessagePreview{
		MessageID: res.ID,
		Content:   content,
		Type:      msgType,
		SenderID:  msg.SenderID,
		SentAt:    res.CreatedAt,
	})

	return msg, nil
}

func (s *messageSenderImpl) Recall(ctx context.Context, rc model.RoomContext, messageID string) error {
	if rc.Empty() || messageID == "" {
		return ErrParamInvalid
	}

	if err := s.api.RecallMessage(ctx, rc.RoomID, messageID); err != nil {
		log.ErrorContext(ctx, "消息撤回失败", "roomId", rc.RoomID, "msgId", messageID, "err", err)
		return errors.Wrap(ErrRecallFailed, err.Error())
	}

	if s.store.ActiveRoom().Matches(rc.RoomID) {
		s.store.MarkRecalled(messageID)
	}
	return nil
}
