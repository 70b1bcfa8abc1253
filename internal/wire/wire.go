//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"
	"github.com/notibox/backend/internal/application"
	appRedirect "github.com/notibox/backend/internal/application/redirect"
	"github.com/notibox/backend/internal/infrastructure"
	infraRouter "github.com/notibox/backend/internal/infrastructure/router"
	"github.com/notibox/backend/internal/interfaces"
)

// InitializeAll 初始化所有服务
func InitializeAll() (*App, error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		// 接口绑定：application.Router -> infrastructure.TemplateRouter
		wire.Bind(
			new(appRedirect.Router),
			new(*infraRouter.TemplateRouter),
		),
		NewApp, // 组合所有服务的应用结构
	)
	return nil, nil
}
