package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appNotification "github.com/notibox/backend/internal/application/notification"
	"github.com/notibox/backend/internal/application/redirect"
	"github.com/notibox/backend/internal/domain/notification"
	"github.com/notibox/backend/internal/interfaces/http/response"
)

// RedirectHandler 通知跳转处理器
// 点击通知时调用：先标记已读，再按 typeMessage 解析跳转目标
type RedirectHandler struct {
	notifications *appNotification.Service
	redirects     *redirect.Service
}

// NewRedirectHandler 创建跳转处理器
func NewRedirectHandler(
	notifications *appNotification.Service,
	redirects *redirect.Service,
) *RedirectHandler {
	return &RedirectHandler{
		notifications: notifications,
		redirects:     redirects,
	}
}

// Redirect 解析通知跳转目标
// 浏览器请求返回 302，XHR 或显式要求 JSON 的请求返回解析结果
func (h *RedirectHandler) Redirect(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	n, err := h.notifications.Get(id)
	if err != nil {
		var nfErr *notification.NotFoundError
		if errors.As(err, &nfErr) {
			response.Error(c, http.StatusNotFound, 100005, "通知不存在")
			return
		}
		response.Error(c, http.StatusInternalServerError, 100004, "查询失败")
		return
	}

	// 点击即标记已读。归属不匹配或标记失败时不暴露真实目标，兜底到首页
	marked, err := h.notifications.MarkAsRead(id, c.Query("user_id"))
	if err != nil || !marked {
		h.finish(c, redirect.Result{Success: false, URL: h.redirects.HomeURL()})
		return
	}

	result := h.redirects.RedirectURL(n.TypeMessage, n.RelationID)
	if !result.Success || result.URL == "" {
		result.URL = h.redirects.HomeURL()
	}

	h.finish(c, result)
}

// finish 按客户端期望返回 302 或 JSON 结果
func (h *RedirectHandler) finish(c *gin.Context, result redirect.Result) {
	if wantsJSON(c) {
		response.Success(c, result)
		return
	}
	c.Redirect(http.StatusFound, result.URL)
}

// wantsJSON 判断客户端是否期望 JSON 结果而非 302
func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
