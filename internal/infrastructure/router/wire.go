package router

import "github.com/google/wire"

// ProviderSet 路由组装器 ProviderSet
var ProviderSet = wire.NewSet(
	NewTemplateRouter,
)
