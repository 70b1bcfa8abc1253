package notification

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxMessageLength 通知正文长度上限（按 Unicode 码点计）
const DefaultMaxMessageLength = 1000

// CreateRequest 创建通知的领域层请求
type CreateRequest struct {
	Type        string
	Message     string
	TypeMessage string
	RelationID  *int64
	UserID      string
}

// Validator 创建请求校验器（领域服务，纯业务规则）
type Validator struct {
	validTypes    []string
	maxMessageLen int
}

// NewValidator 创建校验器
// validTypes 为配置允许的通知类型集合；maxMessageLen <= 0 时使用默认上限
func NewValidator(validTypes []string, maxMessageLen int) *Validator {
	if maxMessageLen <= 0 {
		maxMessageLen = DefaultMaxMessageLength
	}
	return &Validator{
		validTypes:    validTypes,
		maxMessageLen: maxMessageLen,
	}
}

// Validate 校验创建请求
// 收集所有违规项后统一返回，不在第一个错误处短路
func (v *Validator) Validate(req CreateRequest) error {
	var violations []string

	if !v.isValidType(req.Type) {
		violations = append(violations, fmt.Sprintf(
			"Invalid notification type. Valid types are: %s",
			strings.Join(v.validTypes, ", "),
		))
	}

	if req.Message == "" {
		violations = append(violations, "Message cannot be empty")
	}

	// 长度按码点而非字节计算
	if utf8.RuneCountInString(req.Message) > v.maxMessageLen {
		violations = append(violations, fmt.Sprintf(
			"Message length cannot exceed %d characters",
			v.maxMessageLen,
		))
	}

	if req.TypeMessage == "" {
		violations = append(violations, "Type message cannot be empty")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// isValidType 检查类型是否在允许集合内
func (v *Validator) isValidType(typ string) bool {
	for _, t := range v.validTypes {
		if t == typ {
			return true
		}
	}
	return false
}
