package notification

import (
	"github.com/google/wire"

	"github.com/notibox/backend/internal/domain/notification"
	"github.com/notibox/backend/internal/infrastructure/config"
)

// ProvideValidator 从配置创建领域校验器
func ProvideValidator(cfg *config.Config) *notification.Validator {
	return notification.NewValidator(
		cfg.Notification.ValidTypes(),
		cfg.Notification.MaxMessageLength,
	)
}

// ProviderSet 通知应用层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideValidator,
	NewService,
	// 注意：Pusher 接口绑定在基础设施层 wire.go 中处理
)
