package infrastructure

import (
	"github.com/google/wire"
	"github.com/notibox/backend/internal/infrastructure/cache"
	"github.com/notibox/backend/internal/infrastructure/config"
	"github.com/notibox/backend/internal/infrastructure/events"
	"github.com/notibox/backend/internal/infrastructure/notification"
	"github.com/notibox/backend/internal/infrastructure/router"
	"github.com/notibox/backend/internal/infrastructure/storage"
	"github.com/notibox/backend/internal/infrastructure/websocket"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	cache.ProviderSet,
	events.ProviderSet,
	router.ProviderSet,
	websocket.ProviderSet,
	notification.ProviderSet,
	storage.ProviderSet,
	// 可以继续添加其他基础设施模块
)
