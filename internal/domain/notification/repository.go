package notification

import "time"

// ListQuery 通知列表查询条件
type ListQuery struct {
	// UserID 为空表示不按用户过滤
	UserID string
	// OnlyUnread 为 true 时仅返回未读；为 false 时不加 is_read 条件
	OnlyUnread bool
	// Limit 单页条数
	Limit int
	// Offset 偏移量
	Offset int
}

// Repository 通知仓储接口
type Repository interface {
	// Save 保存通知（ID 为 0 时插入并回填 ID，否则更新）
	Save(n *Notification) error

	// FindByID 根据 ID 查找，不存在时返回 (nil, nil)
	FindByID(id int64) (*Notification, error)

	// FindBy 按条件查询，按 created_at 降序排列
	FindBy(q ListQuery) ([]*Notification, error)

	// CountUnread 统计未读数量，userID 为空表示全局统计
	CountUnread(userID string) (int64, error)

	// DeleteOlderThan 删除 cutoff 之前创建且已读的通知，返回删除条数
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
