package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s, err := NewStore(10)
	require.NoError(t, err)

	s.Set("k", "v", time.Minute)

	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestStore_Miss(t *testing.T) {
	s, err := NewStore(10)
	require.NoError(t, err)

	got, ok := s.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestStore_Expiry(t *testing.T) {
	s, err := NewStore(10)
	require.NoError(t, err)

	// 注入时钟，确定性地推进时间
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	s.now = func() time.Time { return current }

	s.Set("k", "v", time.Hour)

	// TTL 内可见
	current = base.Add(59 * time.Minute)
	_, ok := s.Get("k")
	assert.True(t, ok)

	// TTL 过后视为缺失
	current = base.Add(time.Hour + time.Second)
	_, ok = s.Get("k")
	assert.False(t, ok)

	// 过期条目应被顺手清除
	assert.Equal(t, 0, s.Len())
}

func TestStore_SetResetsTTL(t *testing.T) {
	s, err := NewStore(10)
	require.NoError(t, err)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	s.now = func() time.Time { return current }

	s.Set("k", 1, time.Hour)
	current = base.Add(50 * time.Minute)
	// 覆盖写入应重置过期时间
	s.Set("k", 2, time.Hour)

	current = base.Add(100 * time.Minute)
	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestStore_Delete(t *testing.T) {
	s, err := NewStore(10)
	require.NoError(t, err)

	s.Set("k", "v", time.Minute)
	s.Delete("k")

	_, ok := s.Get("k")
	assert.False(t, ok)
}

func TestStore_LRUEviction(t *testing.T) {
	s, err := NewStore(2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		s.Set(fmt.Sprintf("k%d", i), i, time.Minute)
	}

	// 容量为 2，最早写入的条目被淘汰
	_, ok := s.Get("k0")
	assert.False(t, ok)
	_, ok = s.Get("k2")
	assert.True(t, ok)
}

func TestNewStore_InvalidSize(t *testing.T) {
	_, err := NewStore(0)
	assert.Error(t, err)
}
