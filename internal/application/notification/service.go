package notification

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/notibox/backend/internal/domain/events"
	"github.com/notibox/backend/internal/domain/notification"
	"github.com/notibox/backend/internal/infrastructure/cache"
	"github.com/notibox/backend/internal/infrastructure/config"
	"github.com/notibox/backend/internal/infrastructure/log"
)

// Service 通知应用服务（用例编排）
// 所有读路径先查缓存，所有写路径在持久化成功后显式失效相关缓存
type Service struct {
	repo      notification.Repository
	validator *notification.Validator
	cache     *cache.NotificationCache
	bus       events.EventBus
	types     map[string]config.TypeMeta
	logger    *slog.Logger

	// now 可注入时钟，测试用
	now func() time.Time
}

// NewService 创建通知应用服务
func NewService(
	repo notification.Repository,
	validator *notification.Validator,
	notificationCache *cache.NotificationCache,
	bus events.EventBus,
	cfg *config.Config,
) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		cache:     notificationCache,
		bus:       bus,
		types:     cfg.Notification.Types,
		logger:    log.NewModuleLogger("application", "notification"),
		now:       time.Now,
	}
}

// Create 创建通知
// 校验失败返回 *notification.ValidationError，包含全部违规项
func (s *Service) Create(dto *CreateNotificationDTO) (*NotificationDTO, error) {
	req := notification.CreateRequest{
		Type:        dto.Type,
		Message:     dto.Message,
		TypeMessage: dto.TypeMessage,
		RelationID:  dto.RelationID,
		UserID:      dto.UserID,
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	n := &notification.Notification{
		Type:        dto.Type,
		Message:     dto.Message,
		TypeMessage: dto.TypeMessage,
		RelationID:  dto.RelationID,
		UserID:      dto.UserID,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Save(n); err != nil {
		s.logger.Error("Failed to save notification",
			"user_id", dto.UserID,
			"type", dto.Type,
			"error", err,
		)
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	// 新通知改变未读计数，失效对应用户的缓存；快照可以直接预热
	if n.UserID != "" {
		s.cache.InvalidateUnreadCount(n.UserID)
	}
	s.cache.SetNotification(n)

	s.bus.Publish(s.newEvent(events.NotificationCreated, n))

	s.logger.Info("Notification created",
		"notification_id", n.ID,
		"user_id", n.UserID,
		"type", n.Type,
	)

	return s.decorate(ToDTO(n)), nil
}

// Get 按 ID 查询通知
// 不存在时返回 *notification.NotFoundError
func (s *Service) Get(id int64) (*NotificationDTO, error) {
	n, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &notification.NotFoundError{ID: id}
	}
	return s.decorate(ToDTO(n)), nil
}

// List 查询通知列表（按创建时间倒序）
func (s *Service) List(dto *ListNotificationsDTO) ([]*NotificationDTO, error) {
	list, err := s.repo.FindBy(notification.ListQuery{
		UserID:     dto.UserID,
		OnlyUnread: dto.OnlyUnread,
		Limit:      dto.Limit,
		Offset:     dto.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	result := make([]*NotificationDTO, 0, len(list))
	for _, n := range list {
		result = append(result, s.decorate(ToDTO(n)))
	}
	return result, nil
}

// MarkAsRead 标记通知已读
// 返回是否发生标记。通知不属于请求用户时静默跳过，返回 (false, nil)；
// 通知不存在时返回 *notification.NotFoundError
func (s *Service) MarkAsRead(id int64, userID string) (bool, error) {
	n, err := s.find(id)
	if err != nil {
		return false, err
	}
	if n == nil {
		return false, &notification.NotFoundError{ID: id}
	}

	// 归属校验：请求方带用户 ID 且与归属不一致时静默跳过
	// 不带用户 ID 的请求视为可信调用方，全局通知只能由匿名请求标记
	if userID != "" && n.UserID != userID {
		s.logger.Warn("Mark read skipped for foreign notification",
			"notification_id", id,
			"owner", n.UserID,
			"requester", userID,
		)
		return false, nil
	}

	n.MarkRead(s.now())

	if err := s.repo.Save(n); err != nil {
		s.logger.Error("Failed to mark notification read",
			"notification_id", id,
			"error", err,
		)
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	if n.UserID != "" {
		s.cache.InvalidateUnreadCount(n.UserID)
	}
	s.cache.SetNotification(n)

	s.bus.Publish(s.newEvent(events.NotificationRead, n))

	return true, nil
}

// UnreadCount 查询用户未读计数
// userID 为空表示全局计数，全局计数不进缓存
func (s *Service) UnreadCount(userID string) (int64, error) {
	if userID != "" {
		if count, ok := s.cache.UnreadCount(userID); ok {
			return count, nil
		}
	}

	count, err := s.repo.CountUnread(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if userID != "" {
		s.cache.SetUnreadCount(userID, count)
	}
	return count, nil
}

// Types 返回配置的通知类型及展示元数据（字典序）
func (s *Service) Types() []TypeDTO {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]TypeDTO, 0, len(names))
	for _, name := range names {
		meta := s.types[name]
		result = append(result, TypeDTO{
			Type:  name,
			Icon:  meta.Icon,
			Class: meta.Class,
		})
	}
	return result
}

// CleanOld 清理早于指定天数且已读的通知，返回删除条数
func (s *Service) CleanOld(olderThanDays int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -olderThanDays)

	deleted, err := s.repo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean old notifications: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("Old notifications cleaned",
			"deleted", deleted,
			"cutoff", cutoff,
		)
	}
	return deleted, nil
}

// find 按 ID 查询实体，缓存未命中时回源并预热
func (s *Service) find(id int64) (*notification.Notification, error) {
	if n := s.cache.Notification(id); n != nil {
		return n, nil
	}

	n, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if n != nil {
		s.cache.SetNotification(n)
	}
	return n, nil
}

// decorate 按类型配置补全展示元数据
func (s *Service) decorate(dto *NotificationDTO) *NotificationDTO {
	if meta, ok := s.types[dto.Type]; ok {
		dto.Icon = meta.Icon
		dto.Class = meta.Class
	}
	return dto
}

// newEvent 构造通知事件，快照用克隆避免后续修改污染
func (s *Service) newEvent(typ events.EventType, n *notification.Notification) *events.NotificationEvent {
	return &events.NotificationEvent{
		EventType:    typ,
		EventID:      uuid.New().String(),
		Notification: n.Clone(),
		EventTime:    s.now(),
	}
}
