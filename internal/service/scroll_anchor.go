package service

// Viewport 宿主渲染层提供的滚动容器几何量
type Viewport interface {
	ScrollHeight() int
	ScrollTop() int
	SetScrollTop(top int)
}

// ScrollAnchor 跨一次头部插入保持视口内容位置不变
// Capture 记录插入前的内容高度，Restore 在列表更新后、用户可感知的
// 下一帧之前同步执行，按高度差整体下移滚动偏移
type ScrollAnchor struct {
	captured int
	armed    bool
}

// NewScrollAnchor 构造函数
func NewScrollAnchor() *ScrollAnchor {
	return &ScrollAnchor{}
}

// CaptureBeforePrepend 记录插入前内容高度
func (s *ScrollAnchor) CaptureBeforePrepend(v Viewport) {
	s.captured = v.ScrollHeight()
	s.armed = true
}

// RestoreAfterPrepend 计算高度差并补偿滚动偏移，返回实际补偿量
func (s *ScrollAnchor) RestoreAfterPrepend(v Viewport) int {
	if !s.armed {
		return 0
	}
	s.armed = false

	delta := v.ScrollHeight() - s.captured
	if delta <= 0 {
		return 0
	}
	v.SetScrollTop(v.ScrollTop() + delta)
	return delta
}
