package cache

import (
	"github.com/google/wire"

	"github.com/notibox/backend/internal/infrastructure/config"
)

// ProvideStore 根据配置创建缓存实例
func ProvideStore(cfg *config.Config) (*Store, error) {
	return NewStore(cfg.Cache.Size)
}

// ProvideNotificationCache 创建通知缓存
func ProvideNotificationCache(store *Store, cfg *config.Config) *NotificationCache {
	return NewNotificationCache(store, cfg.Cache.TTL())
}

// ProviderSet 缓存基础设施 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideStore,
	ProvideNotificationCache,
)
