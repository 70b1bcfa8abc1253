package notification

import "time"

// Notification 站内通知实体
// ID 在首次持久化前为 0，由存储层分配后不再变化
type Notification struct {
	// ID 通知唯一标识（自增主键）
	ID int64
	// Type 通知类型（须在配置的类型集合内，如 info/success/warning/error）
	Type string
	// Message 通知正文（1..1000 个 Unicode 码点）
	Message string
	// TypeMessage 语义类型键，仅用于跳转映射查找，本模块不解释其含义
	TypeMessage string
	// RelationID 关联业务对象 ID（可选，含义由调用方定义）
	RelationID *int64
	// UserID 归属用户 ID，为空表示全局通知
	UserID string
	// IsRead 已读标记
	IsRead bool
	// CreatedAt 创建时间
	CreatedAt time.Time
	// ReadAt 首次标记已读的时间（未读时为 nil）
	ReadAt *time.Time
}

// MarkRead 标记为已读
// 注意：与历史行为保持一致，重复标记会重置 ReadAt 为最新时间
func (n *Notification) MarkRead(now time.Time) {
	n.IsRead = true
	n.ReadAt = &now
}

// Persisted 是否已由存储层分配 ID
func (n *Notification) Persisted() bool {
	return n.ID != 0
}

// Clone 深拷贝，用于缓存快照，避免调用方修改缓存内的实体
func (n *Notification) Clone() *Notification {
	c := *n
	if n.RelationID != nil {
		v := *n.RelationID
		c.RelationID = &v
	}
	if n.ReadAt != nil {
		t := *n.ReadAt
		c.ReadAt = &t
	}
	return &c
}
