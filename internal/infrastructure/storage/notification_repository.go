package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/notibox/backend/internal/domain/notification"
)

// notificationRepository 通知 SQLite 仓储实现
type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository 创建通知仓储实例
func NewNotificationRepository(db *sql.DB) notification.Repository {
	// 确保表存在
	if err := initNotificationTable(db); err != nil {
		// 初始化失败时记录错误但不阻止创建
		fmt.Printf("failed to init notifications table: %v\n", err)
	}
	return &notificationRepository{db: db}
}

// initNotificationTable 初始化通知表
func initNotificationTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		type_message TEXT NOT NULL,
		relation_id INTEGER,
		user_id TEXT,
		is_read INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		read_at INTEGER
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create notifications table: %w", err)
	}

	// 创建索引
	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
	CREATE INDEX IF NOT EXISTS idx_notifications_is_read ON notifications(is_read);
	CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);
	`

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create notifications indexes: %w", err)
	}

	return nil
}

// Save 保存通知：ID 为 0 时插入并回填自增 ID，否则按 ID 更新
func (r *notificationRepository) Save(n *notification.Notification) error {
	var relationID sql.NullInt64
	if n.RelationID != nil {
		relationID = sql.NullInt64{Int64: *n.RelationID, Valid: true}
	}

	var userID sql.NullString
	if n.UserID != "" {
		userID = sql.NullString{String: n.UserID, Valid: true}
	}

	var readAt sql.NullInt64
	if n.ReadAt != nil {
		readAt = sql.NullInt64{Int64: n.ReadAt.UnixMilli(), Valid: true}
	}

	isRead := 0
	if n.IsRead {
		isRead = 1
	}

	if !n.Persisted() {
		query := `
			INSERT INTO notifications
			(type, message, type_message, relation_id, user_id, is_read, created_at, read_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		result, err := r.db.Exec(query,
			n.Type,
			n.Message,
			n.TypeMessage,
			relationID,
			userID,
			isRead,
			n.CreatedAt.UnixMilli(),
			readAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get inserted notification id: %w", err)
		}
		n.ID = id
		return nil
	}

	query := `
		UPDATE notifications
		SET type = ?, message = ?, type_message = ?, relation_id = ?,
		    user_id = ?, is_read = ?, created_at = ?, read_at = ?
		WHERE id = ?`

	if _, err := r.db.Exec(query,
		n.Type,
		n.Message,
		n.TypeMessage,
		relationID,
		userID,
		isRead,
		n.CreatedAt.UnixMilli(),
		readAt,
		n.ID,
	); err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}

// FindByID 根据 ID 查找通知
func (r *notificationRepository) FindByID(id int64) (*notification.Notification, error) {
	query := `
		SELECT id, type, message, type_message, relation_id, user_id, is_read, created_at, read_at
		FROM notifications
		WHERE id = ?`

	n, err := scanNotification(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query notification: %w", err)
	}
	return n, nil
}

// FindBy 按条件查询，按创建时间降序
// OnlyUnread 为 false 时不加 is_read 条件（即「无过滤」而非「匹配空值」）
func (r *notificationRepository) FindBy(q notification.ListQuery) ([]*notification.Notification, error) {
	query := `
		SELECT id, type, message, type_message, relation_id, user_id, is_read, created_at, read_at
		FROM notifications`

	var conditions []string
	var args []any

	if q.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, q.UserID)
	}
	if q.OnlyUnread {
		conditions = append(conditions, "is_read = 0")
	}

	for i, cond := range conditions {
		if i == 0 {
			query += "\n\t\tWHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += "\n\t\tORDER BY created_at DESC"

	if q.Limit > 0 {
		query += "\n\t\tLIMIT ?"
		args = append(args, q.Limit)
		if q.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, q.Offset)
		}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var items []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			continue
		}
		items = append(items, n)
	}

	return items, nil
}

// CountUnread 统计未读数量，userID 为空表示全局统计
func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE is_read = 0`
	var args []any

	if userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	var count int64
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// DeleteOlderThan 删除 cutoff 之前创建且已读的通知
// 未读通知无论多旧都保留
func (r *notificationRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	query := `DELETE FROM notifications WHERE created_at < ? AND is_read = 1`

	result, err := r.db.Exec(query, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}
	return result.RowsAffected()
}

// rowScanner 兼容 *sql.Row 与 *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanNotification 从查询结果行还原实体
func scanNotification(row rowScanner) (*notification.Notification, error) {
	var n notification.Notification
	var relationID sql.NullInt64
	var userID sql.NullString
	var isRead int
	var createdAt int64
	var readAt sql.NullInt64

	if err := row.Scan(
		&n.ID,
		&n.Type,
		&n.Message,
		&n.TypeMessage,
		&relationID,
		&userID,
		&isRead,
		&createdAt,
		&readAt,
	); err != nil {
		return nil, err
	}

	if relationID.Valid {
		v := relationID.Int64
		n.RelationID = &v
	}
	if userID.Valid {
		n.UserID = userID.String
	}
	n.IsRead = isRead == 1
	n.CreatedAt = time.UnixMilli(createdAt)
	if readAt.Valid {
		t := time.UnixMilli(readAt.Int64)
		n.ReadAt = &t
	}

	return &n, nil
}

// 编译时检查接口实现
var _ notification.Repository = (*notificationRepository)(nil)
