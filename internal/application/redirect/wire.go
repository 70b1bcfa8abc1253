package redirect

import "github.com/google/wire"

// ProviderSet 跳转应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	// 注意：Router 接口绑定在顶层 wire.go 中处理
)
