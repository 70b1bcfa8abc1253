// Package events 定义领域事件类型和接口
// 用于系统内部的事件驱动通信
package events

import "time"

// EventType 事件类型标识
type EventType string

// 通知相关事件类型
const (
	// NotificationCreated 通知创建事件
	NotificationCreated EventType = "notification.created"
	// NotificationRead 通知已读事件
	NotificationRead EventType = "notification.read"
)

// Event 领域事件接口
// 所有事件类型都必须实现此接口
type Event interface {
	// Type 返回事件类型
	Type() EventType
	// Timestamp 返回事件发生时间
	Timestamp() time.Time
}
