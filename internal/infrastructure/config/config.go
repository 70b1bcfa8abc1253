package config

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	// EnvHTTPPort HTTP 端口环境变量名
	EnvHTTPPort = "NOTIBOX_HTTP_PORT"
	// EnvDatabasePath 数据库路径环境变量名
	EnvDatabasePath = "NOTIBOX_DB_PATH"

	// DefaultHTTPPort 默认 HTTP 端口
	DefaultHTTPPort = ":18960"
	// DefaultCacheSize 本地缓存容量（LRU 条目数）
	DefaultCacheSize = 500
	// DefaultCacheTTLSeconds 缓存条目过期时间（秒），固定 TTL，不做滑动续期
	DefaultCacheTTLSeconds = 3600
	// DefaultDatabaseName 默认数据库文件名
	DefaultDatabaseName = "notibox.db"
)

// RelationIDParam 跳转参数占位符
// redirect_map 中参数值等于该哨兵时，会被替换为通知的 relation_id
const RelationIDParam = "relation_id"

// Config 应用配置
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Cache        CacheConfig        `yaml:"cache"`
	Notification NotificationConfig `yaml:"notification"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort string `yaml:"http_port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Path SQLite 数据库文件路径，留空表示使用 <数据目录>/notibox.db
	Path string `yaml:"path"`
}

// CacheConfig 本地缓存配置
type CacheConfig struct {
	Size       int `yaml:"size"`
	TTLSeconds int `yaml:"ttl_seconds"`
}

// TTL 返回缓存过期时间
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// TypeMeta 通知类型的展示元数据
type TypeMeta struct {
	Icon  string `yaml:"icon"`
	Class string `yaml:"class"`
}

// RedirectRule 单条跳转规则
// Params 的值为 relation_id 哨兵时在解析阶段替换为实际关联 ID
type RedirectRule struct {
	Route  string            `yaml:"route"`
	Params map[string]string `yaml:"params"`
}

// NotificationConfig 通知模块配置
type NotificationConfig struct {
	// Types 允许的通知类型及其展示元数据
	Types map[string]TypeMeta `yaml:"types"`
	// MaxMessageLength 通知正文长度上限（Unicode 码点）
	MaxMessageLength int `yaml:"max_message_length"`
	// RedirectMap typeMessage 到跳转规则的静态映射
	RedirectMap map[string]RedirectRule `yaml:"redirect_map"`
	// Routes 路由名到路径模板的映射，:param 形式的段会被参数替换
	Routes map[string]string `yaml:"routes"`
	// HomeRoute 解析失败时兜底的路由名
	HomeRoute string `yaml:"home_route"`
}

// ValidTypes 返回允许的通知类型列表（字典序，保证错误信息可复现）
func (c NotificationConfig) ValidTypes() []string {
	types := make([]string, 0, len(c.Types))
	for t := range c.Types {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// NewConfig 创建配置（默认值 + 环境变量覆盖）
func NewConfig() *Config {
	cfg := defaultConfig()
	cfg.applyEnv()
	return cfg
}

// defaultConfig 创建默认配置
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
		},
		Database: DatabaseConfig{
			Path: "",
		},
		Cache: CacheConfig{
			Size:       DefaultCacheSize,
			TTLSeconds: DefaultCacheTTLSeconds,
		},
		Notification: NotificationConfig{
			Types: map[string]TypeMeta{
				"info":    {Icon: "fas fa-info-circle", Class: "info"},
				"success": {Icon: "fas fa-check-circle", Class: "success"},
				"warning": {Icon: "fas fa-exclamation-triangle", Class: "warning"},
				"error":   {Icon: "fas fa-times-circle", Class: "danger"},
			},
			MaxMessageLength: 1000,
			RedirectMap: map[string]RedirectRule{
				"default": {
					Route:  "home",
					Params: map[string]string{},
				},
				"contract_termination": {
					Route: "contract/termination",
					Params: map[string]string{
						"termination_id": RelationIDParam,
					},
				},
			},
			Routes: map[string]string{
				"home":                 "/",
				"contract/termination": "/contract/termination/:termination_id",
			},
			HomeRoute: "home",
		},
	}
}

// applyEnv 应用环境变量覆盖（优先级高于配置文件）
func (c *Config) applyEnv() {
	if port := os.Getenv(EnvHTTPPort); port != "" {
		c.Server.HTTPPort = port
	}
	if path := os.Getenv(EnvDatabasePath); path != "" {
		c.Database.Path = path
	}
}

// DatabasePath 返回数据库文件路径，未配置时落到数据目录下的默认文件
func (c *Config) DatabasePath() string {
	return c.Database.ResolvedPath()
}

// ResolvedPath 返回数据库文件路径，未配置时落到数据目录下的默认文件
func (c *DatabaseConfig) ResolvedPath() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(GetDataDir(), DefaultDatabaseName)
}

// NewDatabaseConfig 创建数据库配置
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}
