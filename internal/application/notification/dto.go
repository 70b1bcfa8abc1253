package notification

import (
	"time"

	"github.com/notibox/backend/internal/domain/notification"
)

// CreateNotificationDTO 创建通知请求
// 字段校验由领域层 Validator 统一完成，这里不做 binding 校验，
// 保证所有违规项能一次性返回
type CreateNotificationDTO struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	TypeMessage string `json:"typeMessage"`
	RelationID  *int64 `json:"relationId"`
	UserID      string `json:"userId"`
}

// ListNotificationsDTO 通知列表查询参数
type ListNotificationsDTO struct {
	UserID     string `form:"user_id"`
	OnlyUnread bool   `form:"unread"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// NotificationDTO 通知响应
type NotificationDTO struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	TypeMessage string `json:"typeMessage"`
	RelationID  *int64 `json:"relationId,omitempty"`
	UserID      string `json:"userId"`
	IsRead      bool   `json:"isRead"`
	CreatedAt   string `json:"createdAt"`
	ReadAt      string `json:"readAt,omitempty"`
	// Icon/Class 来自类型配置的展示元数据
	Icon  string `json:"icon,omitempty"`
	Class string `json:"class,omitempty"`
}

// TypeDTO 通知类型及其展示元数据
type TypeDTO struct {
	Type  string `json:"type"`
	Icon  string `json:"icon"`
	Class string `json:"class"`
}

// ToDTO 转换为 DTO
func ToDTO(n *notification.Notification) *NotificationDTO {
	dto := &NotificationDTO{
		ID:          n.ID,
		Type:        n.Type,
		Message:     n.Message,
		TypeMessage: n.TypeMessage,
		RelationID:  n.RelationID,
		UserID:      n.UserID,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		dto.ReadAt = n.ReadAt.Format(time.RFC3339)
	}
	return dto
}
