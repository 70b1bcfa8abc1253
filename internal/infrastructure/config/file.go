package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName 配置文件名
const FileName = "config.yaml"

// FilePath 返回配置文件路径（<数据目录>/config.yaml）
func FilePath() string {
	return filepath.Join(GetDataDir(), FileName)
}

// LoadFile 从 YAML 文件加载配置
// 文件内容覆盖在默认配置之上（未出现的字段保持默认值），环境变量优先级最高
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Load 加载配置
// 配置文件不存在或解析失败时退回默认配置，保证进程总能启动
func Load() *Config {
	cfg, err := LoadFile(FilePath())
	if err != nil {
		return NewConfig()
	}
	return cfg
}
