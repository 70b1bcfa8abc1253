// Package cache 提供进程内带 TTL 的本地缓存
// 仅作为读加速器使用，任何条目随时可能缺失，不承担数据源职责
package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Item 包装缓存数据和过期时间
type Item struct {
	Data      any
	ExpiresAt time.Time
}

// Store LRU + 固定 TTL 的本地缓存
// TTL 不做滑动续期：Set 时计算一次过期时间，读取不延长
type Store struct {
	lruCache *lru.Cache[string, Item]
	// now 时钟注入点，测试中替换以便确定性地验证过期
	now func() time.Time
}

// NewStore 创建缓存实例，size 为 LRU 容量上限
func NewStore(size int) (*Store, error) {
	l, err := lru.New[string, Item](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &Store{
		lruCache: l,
		now:      time.Now,
	}, nil
}

// Set 设置缓存，无条件覆盖并重置 TTL
func (s *Store) Set(key string, data any, ttl time.Duration) {
	s.lruCache.Add(key, Item{
		Data:      data,
		ExpiresAt: s.now().Add(ttl),
	})
}

// Get 获取缓存，不存在或已过期时返回 (nil, false)
func (s *Store) Get(key string) (any, bool) {
	item, ok := s.lruCache.Get(key)
	if !ok {
		return nil, false
	}

	// 过期条目按缺失处理并顺手清除
	if s.now().After(item.ExpiresAt) {
		s.lruCache.Remove(key)
		return nil, false
	}

	return item.Data, true
}

// Delete 删除指定缓存条目
func (s *Store) Delete(key string) {
	s.lruCache.Remove(key)
}

// Len 当前缓存条目数（含未清理的过期条目）
func (s *Store) Len() int {
	return s.lruCache.Len()
}
