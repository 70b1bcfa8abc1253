package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"

	"github.com/notibox/backend/internal/infrastructure/log"
	"github.com/notibox/backend/internal/infrastructure/websocket"
)

const (
	// writeWait 单条消息写超时
	writeWait = 10 * time.Second
	// pongWait 读超时（等待客户端 pong）
	pongWait = 60 * time.Second
	// pingPeriod 心跳间隔，必须小于 pongWait
	pingPeriod = (pongWait * 9) / 10
)

// upgrader WebSocket 协议升级器
// 服务只监听本机端口，不做跨域限制
var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamHandler 通知实时推送处理器
type StreamHandler struct {
	hub    *websocket.Hub
	logger *slog.Logger
}

// NewStreamHandler 创建推送处理器
func NewStreamHandler(hub *websocket.Hub) *StreamHandler {
	return &StreamHandler{
		hub:    hub,
		logger: log.NewModuleLogger("http", "stream"),
	}
}

// Stream 建立 WebSocket 连接，按 user_id 订阅通知推送
func (h *StreamHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", "error", err)
		return
	}

	client := &websocket.Connection{
		UserID: c.Query("user_id"),
		ID:     uuid.New().String(),
		Send:   make(chan []byte, 16),
	}
	h.hub.Register(client)

	h.logger.Info("WebSocket client connected",
		"connection_id", client.ID,
		"user_id", client.UserID,
	)

	go h.writePump(conn, client)
	h.readPump(conn, client)
}

// writePump 把 Send 通道的消息写给客户端，定期发送心跳
func (h *StreamHandler) writePump(conn *gorillaws.Conn, client *websocket.Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub 关闭了通道
				conn.WriteMessage(gorillaws.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(gorillaws.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(gorillaws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 丢弃客户端消息，连接断开时注销
func (h *StreamHandler) readPump(conn *gorillaws.Conn, client *websocket.Connection) {
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
		h.logger.Info("WebSocket client disconnected",
			"connection_id", client.ID,
			"user_id", client.UserID,
		)
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
