package application

import (
	"github.com/google/wire"
	"github.com/notibox/backend/internal/application/notification"
	"github.com/notibox/backend/internal/application/redirect"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	notification.ProviderSet,
	redirect.ProviderSet,
	// 可以继续添加其他应用服务模块
)
