// Package redirect 把通知的 typeMessage 解析为应用内跳转 URL
package redirect

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/notibox/backend/internal/infrastructure/config"
	"github.com/notibox/backend/internal/infrastructure/log"
)

// Router URL 组装接口（定义在 application 层）
type Router interface {
	Assemble(routeName string, params map[string]string) (string, error)
}

// DefaultMappingKey 无专属映射时使用的兜底键
const DefaultMappingKey = "default"

// Result 跳转解析结果
// Success 为 false 表示解析走了兜底路径（无映射或组装失败）
type Result struct {
	Success bool              `json:"success"`
	URL     string            `json:"redirect_url"`
	Params  map[string]string `json:"params,omitempty"`
}

// Service 跳转解析服务
// 映射表可在运行期整体替换（配置热更新）或单条增删
type Service struct {
	router    Router
	mappings  map[string]config.RedirectRule
	homeRoute string
	mu        sync.RWMutex
	logger    *slog.Logger
}

// NewService 创建跳转解析服务
func NewService(router Router, cfg *config.Config) *Service {
	s := &Service{
		router:    router,
		homeRoute: cfg.Notification.HomeRoute,
		logger:    log.NewModuleLogger("application", "redirect"),
	}
	s.ReplaceMappings(cfg.Notification.RedirectMap)
	return s
}

// RedirectURL 解析通知的跳转目标
// 无专属映射时落到 default 映射；无映射或组装失败时返回空的失败结果，
// 兜底到首页由展示层负责
func (s *Service) RedirectURL(typeMessage string, relationID *int64) Result {
	rule, ok := s.Mapping(typeMessage)
	if !ok {
		rule, ok = s.Mapping(DefaultMappingKey)
		if !ok {
			return Result{Success: false}
		}
	}

	params := s.resolveParams(rule.Params, relationID)

	url, err := s.router.Assemble(rule.Route, params)
	if err != nil {
		s.logger.Warn("Failed to assemble redirect URL",
			"type_message", typeMessage,
			"route", rule.Route,
			"error", err,
		)
		return Result{Success: false}
	}

	return Result{Success: true, URL: url, Params: params}
}

// HomeURL 返回首页地址，供展示层在解析失败时兜底
func (s *Service) HomeURL() string {
	url, err := s.router.Assemble(s.homeRoute, nil)
	if err != nil {
		// 首页路由也无法组装时退到根路径
		s.logger.Error("Failed to assemble home route", "error", err)
		return "/"
	}
	return url
}

// AddMapping 新增或覆盖单条映射
func (s *Service) AddMapping(typeMessage string, rule config.RedirectRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[typeMessage] = rule
}

// RemoveMapping 删除单条映射
func (s *Service) RemoveMapping(typeMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mappings, typeMessage)
}

// Mapping 查询单条映射
func (s *Service) Mapping(typeMessage string) (config.RedirectRule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rule, ok := s.mappings[typeMessage]
	return rule, ok
}

// ReplaceMappings 整体替换映射表，配置热更新时调用
func (s *Service) ReplaceMappings(mappings map[string]config.RedirectRule) {
	cloned := make(map[string]config.RedirectRule, len(mappings))
	for key, rule := range mappings {
		cloned[key] = rule
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings = cloned
}

// resolveParams 展开规则参数
// 值为 relation_id 哨兵的参数替换为实际关联 ID，无关联 ID 时该参数被丢弃
func (s *Service) resolveParams(ruleParams map[string]string, relationID *int64) map[string]string {
	params := make(map[string]string, len(ruleParams))
	for name, value := range ruleParams {
		if value == config.RelationIDParam {
			if relationID == nil {
				continue
			}
			params[name] = strconv.FormatInt(*relationID, 10)
			continue
		}
		params[name] = value
	}
	return params
}
