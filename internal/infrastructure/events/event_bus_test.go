package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notibox/backend/internal/domain/events"
	"github.com/notibox/backend/internal/domain/notification"
)

func newTestEvent(typ events.EventType) *events.NotificationEvent {
	return &events.NotificationEvent{
		EventType:    typ,
		EventID:      "test-event",
		Notification: &notification.Notification{ID: 1, UserID: "user-a"},
		EventTime:    time.Now(),
	}
}

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	var mu sync.Mutex
	var received []events.Event

	bus.Subscribe(events.NotificationCreated, events.HandlerFunc(func(e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e)
		return nil
	}))

	bus.Publish(newTestEvent(events.NotificationCreated))
	// 不匹配的类型不应分发
	bus.Publish(newTestEvent(events.NotificationRead))

	bus.Close() // 等待分发完成

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, events.NotificationCreated, received[0].Type())
}

func TestEventBus_SubscribeMultiple(t *testing.T) {
	bus := NewEventBus()

	var mu sync.Mutex
	count := 0

	bus.SubscribeMultiple(
		[]events.EventType{events.NotificationCreated, events.NotificationRead},
		events.HandlerFunc(func(e events.Event) error {
			mu.Lock()
			defer mu.Unlock()
			count++
			return nil
		}),
	)

	bus.Publish(newTestEvent(events.NotificationCreated))
	bus.Publish(newTestEvent(events.NotificationRead))
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, count)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()

	var mu sync.Mutex
	count := 0
	handler := events.HandlerFunc(func(e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	})

	// 同一处理器订阅两次，只取消其中一个
	unsub := bus.Subscribe(events.NotificationCreated, handler)
	bus.Subscribe(events.NotificationCreated, handler)
	unsub()

	bus.Publish(newTestEvent(events.NotificationCreated))
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count, "取消订阅后不应再收到事件")
}

func TestEventBus_UnsubscribeMultiple(t *testing.T) {
	bus := NewEventBus()

	var mu sync.Mutex
	count := 0

	unsub := bus.SubscribeMultiple(
		[]events.EventType{events.NotificationCreated, events.NotificationRead},
		events.HandlerFunc(func(e events.Event) error {
			mu.Lock()
			defer mu.Unlock()
			count++
			return nil
		}),
	)
	unsub()

	bus.Publish(newTestEvent(events.NotificationCreated))
	bus.Publish(newTestEvent(events.NotificationRead))
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, count)
}

func TestEventBus_PublishAfterClose(t *testing.T) {
	bus := NewEventBus()

	var mu sync.Mutex
	count := 0

	bus.Subscribe(events.NotificationCreated, events.HandlerFunc(func(e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	}))

	bus.Close()
	bus.Publish(newTestEvent(events.NotificationCreated))

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, count, "关闭后的发布应被丢弃")
}

// TestEventBus_HandlerPanic 单个处理器 panic 不应影响其他处理器
func TestEventBus_HandlerPanic(t *testing.T) {
	bus := NewEventBus()

	var mu sync.Mutex
	ok := false

	bus.Subscribe(events.NotificationCreated, events.HandlerFunc(func(e events.Event) error {
		panic("boom")
	}))
	bus.Subscribe(events.NotificationCreated, events.HandlerFunc(func(e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		ok = true
		return nil
	}))

	bus.Publish(newTestEvent(events.NotificationCreated))
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, ok)
}
