package model

// RoomContext 当前激活房间的显式上下文
// 作为参数传入事件路由与分页控制器，避免隐式读取全局可变状态；
// 陈旧响应的丢弃判断（应用时比对房间）依赖它
type RoomContext struct {
	RoomID string
}

// Matches 判断事件/响应是否属于该激活房间
func (rc RoomContext) Matches(roomID string) bool {
	return rc.RoomID != "" && rc.RoomID == roomID
}

// Empty 是否未选中任何房间
func (rc RoomContext) Empty() bool {
	return rc.RoomID == ""
}

// PaginationState 向历史方向翻页的状态
// 切换激活房间时整体重置；每次 load more 单调向更早的消息推进
type PaginationState struct {
	HasMore        bool
	IsLoadingMore  bool
	OldestLoadedID string
	CurrentPage    int
}

// NewPaginationState 初始态：空列表且假定还有更多
func NewPaginationState() PaginationState {
	return PaginationState{HasMore: true}
}
