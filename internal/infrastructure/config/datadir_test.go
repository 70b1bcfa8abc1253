package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDataDir_EnvOverride(t *testing.T) {
	ResetDataDir()
	t.Cleanup(ResetDataDir)

	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)

	assert.Equal(t, dir, GetDataDir())
}

func TestGetDataDir_Default(t *testing.T) {
	ResetDataDir()
	t.Cleanup(ResetDataDir)

	t.Setenv(EnvDataDir, "")

	dir := GetDataDir()
	assert.Equal(t, DefaultDataDirName, filepath.Base(dir))
}

func TestGetDataDir_Cached(t *testing.T) {
	ResetDataDir()
	t.Cleanup(ResetDataDir)

	first := t.TempDir()
	t.Setenv(EnvDataDir, first)
	got := GetDataDir()

	// 后续修改环境变量不影响已缓存的结果
	t.Setenv(EnvDataDir, t.TempDir())
	assert.Equal(t, got, GetDataDir())
}
