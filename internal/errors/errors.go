package errors

import (
	"errors"
	"fmt"
)

// AppError 应用错误类型
// 统一携带错误码与用户可见消息，响应层据此输出
type AppError struct {
	Code    int    // 错误码
	Message string // 用户可见的错误消息
	Err     error  // 原始错误（可选，用于调试）
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError 创建新错误
func NewError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装原始错误
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// WithMessage 替换用户可见消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// Is 判断是否为指定错误
func Is(err error, target *AppError) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == target.Code
	}
	return false
}

// GetCode 获取错误码，非 AppError 返回服务器错误
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeServerError
}

// GetMessage 获取错误消息
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "服务器内部错误"
}

// ============== 错误码定义 ==============

const (
	CodeSuccess = 0

	// 参数与认证 10000-10999
	CodeInvalidParams = 10001
	CodeTokenInvalid  = 10002
	CodeTokenExpired  = 10003

	// 手牌校验 20000-20999
	CodeWrongTileCount  = 20001
	CodeInvalidTileKind = 20002
	CodeTooManyCopies   = 20003

	// 点数计算 30000-30999
	CodeScoringDisabled = 30001
	CodeScoringFailed   = 30002

	// 分析记录 40000-40999
	CodeRecordNotFound = 40001

	// 系统错误 50000-50999
	CodeServerError = 50001
	CodeDBError     = 50002
)

// ============== 预定义错误 ==============

// 参数与认证
var (
	ErrInvalidParams = NewError(CodeInvalidParams, "参数校验失败")
	ErrTokenInvalid  = NewError(CodeTokenInvalid, "Token 无效")
	ErrTokenExpired  = NewError(CodeTokenExpired, "Token 已过期")
)

// 手牌校验
var (
	ErrWrongTileCount  = NewError(CodeWrongTileCount, "手牌张数不正确")
	ErrInvalidTileKind = NewError(CodeInvalidTileKind, "无效的牌种")
	ErrTooManyCopies   = NewError(CodeTooManyCopies, "同种牌超过 4 张")
)

// 点数计算
var (
	ErrScoringDisabled = NewError(CodeScoringDisabled, "点数计算未启用")
	ErrScoringFailed   = NewError(CodeScoringFailed, "点数计算失败")
)

// 分析记录
var (
	ErrRecordNotFound = NewError(CodeRecordNotFound, "分析记录不存在")
)

// 系统相关
var (
	ErrServerError = NewError(CodeServerError, "服务器内部错误")
	ErrDBError     = NewError(CodeDBError, "数据库错误")
)
