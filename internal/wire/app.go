package wire

import (
	"database/sql"
	"time"

	"log/slog"

	appNotification "github.com/notibox/backend/internal/application/notification"
	appRedirect "github.com/notibox/backend/internal/application/redirect"
	"github.com/notibox/backend/internal/domain/events"
	"github.com/notibox/backend/internal/infrastructure/config"
	applog "github.com/notibox/backend/internal/infrastructure/log"
	infraRouter "github.com/notibox/backend/internal/infrastructure/router"
	"github.com/notibox/backend/internal/infrastructure/websocket"
	"github.com/notibox/backend/internal/interfaces"
)

const (
	// retentionDays 已读通知保留天数
	retentionDays = 30
	// cleanInterval 过期通知清理周期
	cleanInterval = 24 * time.Hour
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer      *interfaces.HTTPServer
	wsHub           *websocket.Hub
	notificationSvc *appNotification.Service
	redirectSvc     *appRedirect.Service
	templateRouter  *infraRouter.TemplateRouter
	pusher          appNotification.Pusher
	eventBus        events.EventBus
	configWatcher   *config.Watcher
	db              *sql.DB
	logger          *slog.Logger

	stopCh chan struct{}
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	wsHub *websocket.Hub,
	notificationSvc *appNotification.Service,
	redirectSvc *appRedirect.Service,
	templateRouter *infraRouter.TemplateRouter,
	pusher appNotification.Pusher,
	eventBus events.EventBus,
	db *sql.DB,
) *App {
	logger := applog.NewModuleLogger("app", "main")

	app := &App{
		HTTPServer:      httpServer,
		wsHub:           wsHub,
		notificationSvc: notificationSvc,
		redirectSvc:     redirectSvc,
		templateRouter:  templateRouter,
		pusher:          pusher,
		eventBus:        eventBus,
		db:              db,
		logger:          logger,
		stopCh:          make(chan struct{}),
	}

	// 配置文件监听：变更后热更新跳转映射和路由表
	watcher, err := config.NewWatcher(config.FilePath(), app.onConfigReload)
	if err != nil {
		logger.Error("Failed to create config watcher", "error", err)
	} else {
		app.configWatcher = watcher
	}

	return app
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting notification backend application")

	// 注册事件订阅者
	a.setupEventSubscribers()

	// 启动 WebSocket Hub
	a.wsHub.Start()

	// 启动配置监听
	if a.configWatcher != nil {
		if err := a.configWatcher.Start(); err != nil {
			a.logger.Error("Failed to start config watcher",
				"error", err,
			)
		}
	}

	// 启动过期通知清理循环
	go a.cleanLoop()

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	a.logger.Info("Notification backend application started successfully")
	return nil
}

// setupEventSubscribers 注册事件订阅者
// 通知创建和已读事件推送给归属用户的所有在线连接
func (a *App) setupEventSubscribers() {
	a.eventBus.SubscribeMultiple(
		[]events.EventType{
			events.NotificationCreated,
			events.NotificationRead,
		},
		events.HandlerFunc(func(event events.Event) error {
			notifEvent, ok := event.(*events.NotificationEvent)
			if !ok {
				return nil
			}
			// 无归属的通知没有推送目标
			if notifEvent.Notification.UserID == "" {
				return nil
			}
			payload := map[string]interface{}{
				"event": string(notifEvent.EventType),
				"data":  appNotification.ToDTO(notifEvent.Notification),
			}
			return a.pusher.PushToUser(notifEvent.Notification.UserID, payload)
		}),
	)
	a.logger.Info("Notification pusher subscribed to notification events")
}

// onConfigReload 配置热更新回调
func (a *App) onConfigReload(cfg *config.Config) {
	a.redirectSvc.ReplaceMappings(cfg.Notification.RedirectMap)
	a.templateRouter.ReplaceRoutes(cfg.Notification.Routes)
	a.logger.Info("Redirect mappings reloaded",
		"mappings", len(cfg.Notification.RedirectMap),
		"routes", len(cfg.Notification.Routes),
	)
}

// cleanLoop 定期清理过期的已读通知
func (a *App) cleanLoop() {
	ticker := time.NewTicker(cleanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if _, err := a.notificationSvc.CleanOld(retentionDays); err != nil {
				a.logger.Error("Failed to clean old notifications",
					"error", err,
				)
			}
		}
	}
}

// Stop 停止所有服务
func (a *App) Stop() {
	a.logger.Info("Stopping notification backend application")

	close(a.stopCh)

	if a.configWatcher != nil {
		a.configWatcher.Stop()
	}

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server", "error", err)
	}

	// 关闭事件总线，等待在途事件推送完成
	a.eventBus.Close()

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
	}

	a.logger.Info("Notification backend application stopped")
}
