package cache

import (
	"strconv"
	"time"

	"github.com/notibox/backend/internal/domain/notification"
)

// 缓存键前缀，两个键空间相互独立
const (
	unreadCountKeyPrefix  = "unread_count:"
	notificationKeyPrefix = "notification:"
)

// DefaultTTL 通知缓存条目的默认过期时间
const DefaultTTL = time.Hour

// NotificationCache 通知读缓存
// 缓存两类查询：按用户的未读计数、按 ID 的通知快照
// 写后一致性完全依赖服务层在每条变更路径上显式失效，缓存自身不做任何重算
type NotificationCache struct {
	store *Store
	ttl   time.Duration
}

// NewNotificationCache 创建通知缓存，ttl <= 0 时使用默认值
func NewNotificationCache(store *Store, ttl time.Duration) *NotificationCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &NotificationCache{store: store, ttl: ttl}
}

// UnreadCount 读取缓存的未读计数，未命中返回 (0, false)
func (c *NotificationCache) UnreadCount(userID string) (int64, bool) {
	data, ok := c.store.Get(unreadCountKey(userID))
	if !ok {
		return 0, false
	}
	count, ok := data.(int64)
	return count, ok
}

// SetUnreadCount 写入未读计数，无条件覆盖并重置 TTL
func (c *NotificationCache) SetUnreadCount(userID string, count int64) {
	c.store.Set(unreadCountKey(userID), count, c.ttl)
}

// InvalidateUnreadCount 失效用户的未读计数
// 服务层必须在每次影响该用户未读总数的写入（创建、标记已读）后调用
func (c *NotificationCache) InvalidateUnreadCount(userID string) {
	c.store.Delete(unreadCountKey(userID))
}

// Notification 读取缓存的通知快照，未命中返回 nil
// 返回克隆，调用方可以安全修改后再回写
func (c *NotificationCache) Notification(id int64) *notification.Notification {
	data, ok := c.store.Get(notificationKey(id))
	if !ok {
		return nil
	}
	n, ok := data.(*notification.Notification)
	if !ok {
		return nil
	}
	return n.Clone()
}

// SetNotification 写入通知快照
// 未持久化（无 ID）的实体不入缓存，直接忽略
func (c *NotificationCache) SetNotification(n *notification.Notification) {
	if n == nil || !n.Persisted() {
		return
	}
	c.store.Set(notificationKey(n.ID), n.Clone(), c.ttl)
}

// InvalidateNotification 失效通知快照
func (c *NotificationCache) InvalidateNotification(id int64) {
	c.store.Delete(notificationKey(id))
}

// unreadCountKey 未读计数键
func unreadCountKey(userID string) string {
	return unreadCountKeyPrefix + userID
}

// notificationKey 通知快照键
func notificationKey(id int64) string {
	return notificationKeyPrefix + strconv.FormatInt(id, 10)
}
