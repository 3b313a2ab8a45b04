package consts

// 实时事件名，与服务端推送的 event 字段一一对应
const (
	EventMessageCreated    = "message-created"
	EventMessageRecalled   = "message-recalled"
	EventRoomCreated       = "room-created"
	EventRoomUpdated       = "room-updated"
	EventMemberAdded       = "member-added"
	EventMemberRemoved     = "member-removed"
	EventMemberRoleChanged = "member-role-changed"
	EventUserStatus        = "user-status"
)
