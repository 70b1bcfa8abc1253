package http

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/notibox/backend/internal/infrastructure/config"
	"github.com/notibox/backend/internal/infrastructure/log"
	"github.com/notibox/backend/internal/interfaces/http/handler"
	"github.com/notibox/backend/internal/interfaces/http/middleware"
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	serverCfg *config.ServerConfig,
	notificationHandler *handler.NotificationHandler,
	redirectHandler *handler.RedirectHandler,
	streamHandler *handler.StreamHandler,
) *HTTPServer {
	router := gin.Default()
	router.Use(middleware.EnsureUTF8Body())

	logger := log.NewModuleLogger("http", "server")

	// 注册路由
	api := router.Group("/api/v1")
	{
		api.POST("/notifications", notificationHandler.Create)
		api.GET("/notifications", notificationHandler.List)
		api.GET("/notifications/types", notificationHandler.Types)
		api.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		api.POST("/notifications/:id/read", notificationHandler.MarkRead)
		api.GET("/notifications/:id/redirect", redirectHandler.Redirect)
	}

	// 实时推送
	router.GET("/ws/notifications", streamHandler.Stream)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &HTTPServer{
		router:   router,
		httpPort: serverCfg.HTTPPort,
		logger:   logger,
	}
}

// Start 启动服务器
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    s.httpPort,
		Handler: s.router,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
