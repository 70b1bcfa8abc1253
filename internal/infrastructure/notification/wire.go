package notification

import (
	"github.com/google/wire"
	appNotification "github.com/notibox/backend/internal/application/notification"
)

// ProviderSet 通知基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	NewWebSocketPusher,
	// 接口绑定：application.Pusher -> WebSocketPusher
	wire.Bind(
		new(appNotification.Pusher),
		new(*WebSocketPusher),
	),
)
