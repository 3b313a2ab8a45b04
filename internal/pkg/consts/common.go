package consts

const (
	DefaultHistoryPageSize = 20
	DefaultRoomPageSize    = 50
	DefaultContactPageSize = 50
)

const (
	HeaderTraceID = "X-Trace-ID"
)
