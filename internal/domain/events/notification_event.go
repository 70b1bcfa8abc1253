package events

import (
	"time"

	"github.com/notibox/backend/internal/domain/notification"
)

// NotificationEvent 通知生命周期事件
// 在通知创建或被标记已读后由应用服务发布
type NotificationEvent struct {
	// EventType 事件类型（created/read）
	EventType EventType
	// EventID 事件唯一标识（UUID），供下游做幂等消费
	EventID string
	// Notification 事件发生时刻的通知快照
	Notification *notification.Notification
	// EventTime 事件发生时间
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *NotificationEvent) Type() EventType {
	return e.EventType
}

// Timestamp 实现 Event 接口
func (e *NotificationEvent) Timestamp() time.Time {
	return e.EventTime
}
