package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notibox/backend/internal/infrastructure/config"
)

func newTestRouter() *TemplateRouter {
	cfg := config.NewConfig()
	return NewTemplateRouter(cfg)
}

func TestTemplateRouter_Assemble(t *testing.T) {
	r := newTestRouter()

	t.Run("静态路由", func(t *testing.T) {
		url, err := r.Assemble("home", nil)
		require.NoError(t, err)
		assert.Equal(t, "/", url)
	})

	t.Run("占位符替换", func(t *testing.T) {
		url, err := r.Assemble("contract/termination", map[string]string{"termination_id": "42"})
		require.NoError(t, err)
		assert.Equal(t, "/contract/termination/42", url)
	})

	t.Run("未知路由", func(t *testing.T) {
		_, err := r.Assemble("does/not/exist", nil)
		assert.Error(t, err)
	})

	t.Run("缺少占位符参数", func(t *testing.T) {
		_, err := r.Assemble("contract/termination", nil)
		assert.Error(t, err)
	})
}

func TestTemplateRouter_Assemble_LeftoverParams(t *testing.T) {
	r := newTestRouter()
	r.ReplaceRoutes(map[string]string{
		"invoice/detail": "/invoice/:invoice_id",
	})

	url, err := r.Assemble("invoice/detail", map[string]string{
		"invoice_id": "7",
		"tab":        "history",
		"highlight":  "total",
	})
	require.NoError(t, err)
	// 剩余参数按字典序附加
	assert.Equal(t, "/invoice/7?highlight=total&tab=history", url)
}

func TestTemplateRouter_ReplaceRoutes(t *testing.T) {
	r := newTestRouter()

	r.ReplaceRoutes(map[string]string{"home": "/dashboard"})

	url, err := r.Assemble("home", nil)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", url)

	// 旧路由表被整体替换
	_, err = r.Assemble("contract/termination", map[string]string{"termination_id": "42"})
	assert.Error(t, err)
}
