package mahjong

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// HandError 手牌校验错误
type HandError struct {
	Code    string                 // 错误代码
	Message string                 // 错误消息
	Context map[string]interface{} // 错误上下文
}

func (e *HandError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Context[k]))
	}
	return fmt.Sprintf("[%s] %s (%s)", e.Code, e.Message, strings.Join(parts, ", "))
}

// Is 按错误代码比较，使 errors.Is 能匹配带上下文的副本
func (e *HandError) Is(target error) bool {
	t, ok := target.(*HandError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewHandError 创建手牌错误
func NewHandError(code, message string) *HandError {
	return &HandError{Code: code, Message: message}
}

// WithContext 返回附加上下文的副本，原错误不变
func (e *HandError) WithContext(key string, value interface{}) *HandError {
	ctx := make(map[string]interface{}, len(e.Context)+1)
	maps.Copy(ctx, e.Context)
	ctx[key] = value
	return &HandError{Code: e.Code, Message: e.Message, Context: ctx}
}

// 手牌校验错误
var (
	ErrWrongTileCount  = NewHandError("WRONG_TILE_COUNT", "手牌张数不正确")
	ErrInvalidTileKind = NewHandError("INVALID_TILE_KIND", "无效的牌种")
	ErrTooManyCopies   = NewHandError("TOO_MANY_COPIES", "同种牌超过 4 张")
)
