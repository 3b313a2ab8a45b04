package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid    = errors.New("参数错误")
	ErrRoomNotFound    = errors.New("房间不存在")
	ErrRoomMismatch    = errors.New("消息不属于当前房间")
	ErrSenderNotMember = errors.New("发送者不在房间内")
	ErrNoActiveRoom    = errors.New("未选中房间")
	ErrNoMoreHistory   = errors.New("没有更多历史消息")
	ErrSendFailed      = errors.New("消息发送失败")
	ErrRecallFailed    = errors.New("消息撤回失败")
	UnauthorizedError  = errors.New("权限不足")
	UnExpectedError    = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrRoomNotFound:    NotFound,
	ErrRoomMismatch:    BadRequest,
	ErrSenderNotMember: BadRequest,
	ErrNoActiveRoom:    BadRequest,
	ErrNoMoreHistory:   BadRequest,
	ErrSendFailed:      InternalServerError,
	ErrRecallFailed:    InternalServerError,
	UnauthorizedError:  Unauthorized,
	UnExpectedError:    InternalServerError,
}
