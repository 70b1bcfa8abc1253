package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/notibox/backend/internal/domain/notification"
)

// setupTestDB 创建临时测试数据库
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "notification_test_*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)

	// 启用 WAL 模式
	_, err = db.Exec("PRAGMA journal_mode=WAL;")
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func newNotification(userID string, createdAt time.Time) *notification.Notification {
	return &notification.Notification{
		Type:        "info",
		Message:     "测试通知",
		TypeMessage: "system_message",
		UserID:      userID,
		CreatedAt:   createdAt,
	}
}

func TestNotificationRepository_Save_Insert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewNotificationRepository(db)

	relID := int64(42)
	n := newNotification("user-a", time.Now())
	n.RelationID = &relID

	err := repo.Save(n)
	require.NoError(t, err)
	assert.Positive(t, n.ID, "插入后应回填自增 ID")

	found, err := repo.FindByID(n.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "info", found.Type)
	assert.Equal(t, "测试通知", found.Message)
	assert.Equal(t, "user-a", found.UserID)
	require.NotNil(t, found.RelationID)
	assert.Equal(t, int64(42), *found.RelationID)
	assert.False(t, found.IsRead)
	assert.Nil(t, found.ReadAt)
}

func TestNotificationRepository_Save_IDStable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewNotificationRepository(db)

	n := newNotification("user-a", time.Now())
	require.NoError(t, repo.Save(n))
	id := n.ID

	// 更新不改变 ID，也不新增行
	n.MarkRead(time.Now())
	require.NoError(t, repo.Save(n))
	assert.Equal(t, id, n.ID)

	all, err := repo.FindBy(notification.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNotificationRepository_Save_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewNotificationRepository(db)

	n := newNotification("user-a", time.Now())
	require.NoError(t, repo.Save(n))

	readAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	n.MarkRead(readAt)
	require.NoError(t, repo.Save(n))

	found, err := repo.FindByID(n.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.IsRead)
	require.NotNil(t, found.ReadAt)
	assert.Equal(t, readAt.UnixMilli(), found.ReadAt.UnixMilli())
}

func TestNotificationRepository_FindByID_Missing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewNotificationRepository(db)

	found, err := repo.FindByID(9999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestNotificationRepository_FindBy(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewNotificationRepository(db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a1 := newNotification("user-a", base.Add(-2*time.Hour))
	a2 := newNotification("user-a", base.Add(-1*time.Hour))
	a3 := newNotification("user-a", base)
	b1 := newNotification("user-b", base)
	global := newNotification("", base)

	for _, n := range []*notification.Notification{a1, a2, a3, b1, global} {
		require.NoError(t, repo.Save(n))
	}
	a2.MarkRead(base)
	require.NoError(t, repo.Save(a2))

	t.Run("按用户过滤并降序", func(t *testing.T) {
		list, err := repo.FindBy(notification.ListQuery{UserID: "user-a"})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, a3.ID, list[0].ID)
		assert.Equal(t, a2.ID, list[1].ID)
		assert.Equal(t, a1.ID, list[2].ID)
	})

	t.Run("仅未读", func(t *testing.T) {
		list, err := repo.FindBy(notification.ListQuery{UserID: "user-a", OnlyUnread: true})
		require.NoError(t, err)
		assert.Len(t, list, 2)
		for _, n := range list {
			assert.False(t, n.IsRead)
		}
	})

	t.Run("OnlyUnread为false时不过滤已读状态", func(t *testing.T) {
		list, err := repo.FindBy(notification.ListQuery{UserID: "user-a", OnlyUnread: false})
		require.NoError(t, err)
		assert.Len(t, list, 3, "已读与未读都应返回")
	})

	t.Run("不按用户过滤返回全部", func(t *testing.T) {
		list, err := repo.FindBy(notification.ListQuery{})
		require.NoError(t, err)
		assert.Len(t, list, 5)
	})

	t.Run("分页", func(t *testing.T) {
		page1, err := repo.FindBy(notification.ListQuery{UserID: "user-a", Limit: 2})
		require.NoError(t, err)
		require.Len(t, page1, 2)

		page2, err := repo.FindBy(notification.ListQuery{UserID: "user-a", Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, page2, 1)
		assert.Equal(t, a1.ID, page2[0].ID)
	})
}

func TestNotificationRepository_CountUnread(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewNotificationRepository(db)

	now := time.Now()
	a1 := newNotification("user-a", now)
	a2 := newNotification("user-a", now)
	b1 := newNotification("user-b", now)
	global := newNotification("", now)

	for _, n := range []*notification.Notification{a1, a2, b1, global} {
		require.NoError(t, repo.Save(n))
	}
	a2.MarkRead(now)
	require.NoError(t, repo.Save(a2))

	count, err := repo.CountUnread("user-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 全局统计包含无归属通知
	count, err = repo.CountUnread("")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestNotificationRepository_DeleteOlderThan(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewNotificationRepository(db)

	now := time.Now()
	oldRead := newNotification("user-a", now.AddDate(0, 0, -31))
	oldUnread := newNotification("user-a", now.AddDate(0, 0, -31))
	recentRead := newNotification("user-a", now.AddDate(0, 0, -1))

	for _, n := range []*notification.Notification{oldRead, oldUnread, recentRead} {
		require.NoError(t, repo.Save(n))
	}
	oldRead.MarkRead(now)
	require.NoError(t, repo.Save(oldRead))
	recentRead.MarkRead(now)
	require.NoError(t, repo.Save(recentRead))

	deleted, err := repo.DeleteOlderThan(now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted, "只有过期且已读的通知被删除")

	// 过期但未读的通知保留
	found, err := repo.FindByID(oldUnread.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)

	// 新近的已读通知保留
	found, err = repo.FindByID(recentRead.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}
