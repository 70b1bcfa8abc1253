// Package router 基于路由模板表组装跳转 URL
package router

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/notibox/backend/internal/infrastructure/config"
)

// TemplateRouter 根据命名路由模板组装 URL
// 模板中以冒号开头的段（如 :termination_id）会被同名参数替换，
// 未被模板消费的参数以排序后的查询串附加
type TemplateRouter struct {
	// routes 路由名到模板的映射
	routes map[string]string
	// mu 保护 routes 的互斥锁
	mu sync.RWMutex
}

// NewTemplateRouter 创建路由模板组装器
func NewTemplateRouter(cfg *config.Config) *TemplateRouter {
	r := &TemplateRouter{
		routes: make(map[string]string),
	}
	r.ReplaceRoutes(cfg.Notification.Routes)
	return r
}

// ReplaceRoutes 整体替换路由表，配置热更新时调用
func (r *TemplateRouter) ReplaceRoutes(routes map[string]string) {
	cloned := make(map[string]string, len(routes))
	for name, tpl := range routes {
		cloned[name] = tpl
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = cloned
}

// Assemble 按路由名组装 URL
func (r *TemplateRouter) Assemble(routeName string, params map[string]string) (string, error) {
	r.mu.RLock()
	template, ok := r.routes[routeName]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("failed to assemble route: unknown route %q", routeName)
	}

	segments := strings.Split(template, "/")
	used := make(map[string]bool, len(params))

	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		name := seg[1:]
		value, ok := params[name]
		if !ok {
			return "", fmt.Errorf("failed to assemble route %q: missing parameter %q", routeName, name)
		}
		segments[i] = value
		used[name] = true
	}

	url := strings.Join(segments, "/")

	// 剩余参数按字典序附加为查询串，保证输出稳定
	var leftover []string
	for name := range params {
		if !used[name] {
			leftover = append(leftover, name)
		}
	}
	if len(leftover) > 0 {
		sort.Strings(leftover)
		pairs := make([]string, 0, len(leftover))
		for _, name := range leftover {
			pairs = append(pairs, name+"="+params[name])
		}
		url += "?" + strings.Join(pairs, "&")
	}

	return url, nil
}
