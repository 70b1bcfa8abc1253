package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notibox/backend/internal/domain/notification"
)

func newTestCache(t *testing.T) *NotificationCache {
	t.Helper()
	store, err := NewStore(100)
	require.NoError(t, err)
	return NewNotificationCache(store, time.Hour)
}

func TestNotificationCache_UnreadCount(t *testing.T) {
	c := newTestCache(t)

	// 冷缓存未命中
	_, ok := c.UnreadCount("user-a")
	assert.False(t, ok)

	c.SetUnreadCount("user-a", 5)
	count, ok := c.UnreadCount("user-a")
	require.True(t, ok)
	assert.Equal(t, int64(5), count)

	// 失效后按缺失处理
	c.InvalidateUnreadCount("user-a")
	_, ok = c.UnreadCount("user-a")
	assert.False(t, ok)
}

func TestNotificationCache_UnreadCount_PerUser(t *testing.T) {
	c := newTestCache(t)

	c.SetUnreadCount("user-a", 3)
	c.SetUnreadCount("user-b", 7)
	c.InvalidateUnreadCount("user-a")

	_, ok := c.UnreadCount("user-a")
	assert.False(t, ok)

	count, ok := c.UnreadCount("user-b")
	require.True(t, ok)
	assert.Equal(t, int64(7), count, "失效只作用于目标用户")
}

func TestNotificationCache_Notification(t *testing.T) {
	c := newTestCache(t)

	n := &notification.Notification{
		ID:          1,
		Type:        "info",
		Message:     "hello",
		TypeMessage: "system_message",
		UserID:      "user-a",
		CreatedAt:   time.Now(),
	}
	c.SetNotification(n)

	got := c.Notification(1)
	require.NotNil(t, got)
	assert.Equal(t, n, got)

	c.InvalidateNotification(1)
	assert.Nil(t, c.Notification(1))
}

// TestNotificationCache_SetNotification_Unpersisted 无 ID 的实体不入缓存
func TestNotificationCache_SetNotification_Unpersisted(t *testing.T) {
	store, err := NewStore(100)
	require.NoError(t, err)
	c := NewNotificationCache(store, time.Hour)

	c.SetNotification(&notification.Notification{Message: "尚未保存"})
	assert.Equal(t, 0, store.Len(), "底层 Set 不应被调用")

	c.SetNotification(nil)
	assert.Equal(t, 0, store.Len())
}

// TestNotificationCache_SnapshotIsolation 缓存返回克隆，外部修改不可见
func TestNotificationCache_SnapshotIsolation(t *testing.T) {
	c := newTestCache(t)

	n := &notification.Notification{ID: 1, Type: "info", Message: "原文"}
	c.SetNotification(n)

	// 写入后修改原实体
	n.Message = "写入后被改"

	got := c.Notification(1)
	require.NotNil(t, got)
	assert.Equal(t, "原文", got.Message)

	// 修改读取结果不影响缓存内的快照
	got.Message = "读取后被改"
	again := c.Notification(1)
	require.NotNil(t, again)
	assert.Equal(t, "原文", again.Message)
}

func TestNotificationCache_TTLExpiry(t *testing.T) {
	store, err := NewStore(100)
	require.NoError(t, err)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	store.now = func() time.Time { return current }

	c := NewNotificationCache(store, time.Hour)
	c.SetUnreadCount("user-a", 9)

	current = base.Add(time.Hour + time.Minute)
	_, ok := c.UnreadCount("user-a")
	assert.False(t, ok, "固定 TTL 到期后条目视为缺失")
}

func TestNotificationCache_KeyspacesIndependent(t *testing.T) {
	c := newTestCache(t)

	c.SetUnreadCount("1", 5)
	c.SetNotification(&notification.Notification{ID: 1, Message: "m"})

	// 两个键空间互不干扰
	c.InvalidateNotification(1)
	count, ok := c.UnreadCount("1")
	require.True(t, ok)
	assert.Equal(t, int64(5), count)
}
