package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/notibox/backend/internal/infrastructure/log"
)

// Watcher 配置文件监听器
// 监听配置文件变更并重新加载，用于运行时热更新跳转映射等配置
// 监听对象是文件所在目录而非文件本身：编辑器保存常用 rename+create 替换文件
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*Config)
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher 创建配置监听器
// onReload 在文件变更且重新解析成功后被调用
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:     path,
		watcher:  fsw,
		onReload: onReload,
		logger:   log.NewModuleLogger("config", "watcher"),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start 开始监听
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch config dir: %w", err)
	}

	w.wg.Add(1)
	go w.watchLoop()

	w.logger.Info("Config watcher started", "path", w.path)
	return nil
}

// watchLoop 事件监听循环
func (w *Watcher) watchLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFsEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

// handleFsEvent 处理文件系统事件
func (w *Watcher) handleFsEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	cfg, err := LoadFile(w.path)
	if err != nil {
		// 解析失败时保留旧配置，只记录日志
		w.logger.Error("Failed to reload config", "error", err)
		return
	}

	w.logger.Info("Config reloaded", "path", w.path)
	w.onReload(cfg)
}

// Stop 停止监听
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.wg.Wait()
}
