package live

import (
	"Nimbus/internal/api/dto"
	"Nimbus/internal/model"
	"Nimbus/internal/pkg/consts"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Event 实时事件的类型化变体，事件名仅在解码边界出现一次
// 下游分发全部基于类型开关，不再传递字符串事件名
type Event interface {
	Name() string
}

// MemberChange 成员变更种类
type MemberChange int

const (
	MemberAdded MemberChange = iota + 1
	MemberRemoved
	MemberRoleChanged
)

// MessageCreated 新消息
type MessageCreated struct {
	Message *model.Message
}

func (MessageCreated) Name() string { return consts.EventMessageCreated }

// MessageRecalled 消息撤回
type MessageRecalled struct {
	RoomID    string
	MessageID string
}

func (MessageRecalled) Name() string { return consts.EventMessageRecalled }

// RoomCreated 新房间
type RoomCreated struct {
	Room *model.Room
}

func (RoomCreated) Name() string { return consts.EventRoomCreated }

// RoomUpdated 房间更新，可携带随路系统消息
type RoomUpdated struct {
	Room          *model.Room
	SystemMessage *model.Message
}

func (RoomUpdated) Name() string { return consts.EventRoomUpdated }

// MemberChanged 成员增删/角色变更
type MemberChanged struct {
	Change        MemberChange
	RoomID        string
	UserID        string
	Room          *model.Room
	SystemMessage *model.Message
}

func (s MemberChanged) Name() string {
	switch s.Change {
	case MemberAdded:
		return consts.EventMemberAdded
	case MemberRemoved:
		return consts.EventMemberRemoved
	default:
		return consts.EventMemberRoleChanged
	}
}

// UserStatus 用户上下线
type UserStatus struct {
	UserID string
	Online bool
}

func (UserStatus) Name() string { return consts.EventUserStatus }

var errUnknownEvent = errors.New("未知事件名")

// DecodeEvent 将事件信封解码为类型化变体，负载缺字段视为畸形事件
func DecodeEvent(raw []byte, validate *validator.Validate) (Event, error) {
	var envelope dto.EventEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Wrap(err, "decode event envelope")
	}
	if err := validate.Struct(&envelope); err != nil {
		return nil, errors.Wrap(err, "validate event envelope")
	}

	switch envelope.Event {
	case consts.EventMessageCreated:
		var payload dto.MessageDTO
		if err := decodePayload(envelope.Data, &payload, validate); err != nil {
			return nil, err
		}
		return MessageCreated{Message: payload.ToModel()}, nil

	case consts.EventMessageRecalled:
		var payload dto.MessageRecalledEvent
		if err := decodePayload(envelope.Data, &payload, validate); err != nil {
			return nil, err
		}
		return MessageRecalled{RoomID: payload.RoomID, MessageID: payload.MessageID}, nil

	case consts.EventRoomCreated:
		var payload dto.RoomEvent
		if err := decodePayload(envelope.Data, &payload, validate); err != nil {
			return nil, err
		}
		room := payload.Room.ToModel()
		if err := room.Validate(); err != nil {
			return nil, errors.Wrap(err, "room invariant")
		}
		return RoomCreated{Room: room}, nil

	case consts.EventRoomUpdated:
		var payload dto.RoomEvent
		if err := decodePayload(envelope.Data, &payload, validate); err != nil {
			return nil, err
		}
		ev := RoomUpdated{Room: payload.Room.ToModel()}
		if payload.SystemMessage != nil {
			ev.SystemMessage = payload.SystemMessage.ToModel()
		}
		return ev, nil

	case consts.EventMemberAdded, consts.EventMemberRemoved, consts.EventMemberRoleChanged:
		var payload dto.MemberEvent
		if err := decodePayload(envelope.Data, &payload, validate); err != nil {
			return nil, err
		}
		ev := MemberChanged{
			Change: memberChangeOf(envelope.Event),
			RoomID: payload.RoomID,
			UserID: payload.UserID,
		}
		if payload.Room != nil {
			ev.Room = payload.Room.ToModel()
		}
		if payload.SystemMessage != nil {
			ev.SystemMessage = payload.SystemMessage.ToModel()
		}
		return ev, nil

	case consts.EventUserStatus:
		var payload dto.UserStatusEvent
		if err := decodePayload(envelope.Data, &payload, validate); err != nil {
			return nil, err
		}
		return UserStatus{UserID: payload.UserID, Online: payload.IsOnline}, nil

	default:
		return nil, errors.Wrap(errUnknownEvent, envelope.Event)
	}
}

func decodePayload(raw json.RawMessage, out interface{}, validate *validator.Validate) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode event payload")
	}
	if err := validate.Struct(out); err != nil {
		return errors.Wrap(err, "validate event payload")
	}
	return nil
}

func memberChangeOf(event string) MemberChange {
	switch event {
	case consts.EventMemberAdded:
		return MemberAdded
	case consts.EventMemberRemoved:
		return MemberRemoved
	default:
		return MemberRoleChanged
	}
}
