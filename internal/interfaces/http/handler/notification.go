package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appNotification "github.com/notibox/backend/internal/application/notification"
	"github.com/notibox/backend/internal/domain/notification"
	"github.com/notibox/backend/internal/interfaces/http/response"
)

const (
	// DefaultPageSize 列表默认条数
	DefaultPageSize = 20
	// MaxPageSize 列表单页条数上限
	MaxPageSize = 100
)

// NotificationHandler 通知处理器
type NotificationHandler struct {
	service *appNotification.Service
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(service *appNotification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Create 创建通知
func (h *NotificationHandler) Create(c *gin.Context) {
	var dto appNotification.CreateNotificationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	result, err := h.service.Create(&dto)
	if err != nil {
		var vErr *notification.ValidationError
		if errors.As(err, &vErr) {
			response.ErrorWithDetail(c, http.StatusUnprocessableEntity, 100002, "校验失败", vErr.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, 100003, "创建失败")
		return
	}

	response.Success(c, result)
}

// List 查询通知列表
func (h *NotificationHandler) List(c *gin.Context) {
	var dto appNotification.ListNotificationsDTO
	if err := c.ShouldBindQuery(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	if dto.Limit <= 0 {
		dto.Limit = DefaultPageSize
	}
	if dto.Limit > MaxPageSize {
		dto.Limit = MaxPageSize
	}
	if dto.Offset < 0 {
		dto.Offset = 0
	}

	result, err := h.service.List(&dto)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 100004, "查询失败")
		return
	}

	response.Success(c, result)
}

// Types 查询通知类型及展示元数据
func (h *NotificationHandler) Types(c *gin.Context) {
	response.Success(c, h.service.Types())
}

// UnreadCount 查询未读计数
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Query("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 100004, "查询失败")
		return
	}

	response.Success(c, gin.H{"count": count})
}

// MarkRead 标记通知已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	marked, err := h.service.MarkAsRead(id, c.Query("user_id"))
	if err != nil {
		var nfErr *notification.NotFoundError
		if errors.As(err, &nfErr) {
			response.Error(c, http.StatusNotFound, 100005, "通知不存在")
			return
		}
		response.Error(c, http.StatusInternalServerError, 100006, "标记失败")
		return
	}

	response.Success(c, gin.H{"marked": marked})
}
