package notification

import (
	"fmt"
	"strings"
)

// ValidationError 创建请求校验失败
// Violations 携带全部违规项（非短路收集），供展示层逐条呈现
type ValidationError struct {
	Violations []string
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	return "notification validation failed: " + strings.Join(e.Violations, "; ")
}

// NotFoundError 通知不存在
type NotFoundError struct {
	ID int64
}

// Error 实现 error 接口
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notification %d not found", e.ID)
}
