package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "sudooom.mj.advisor/internal/errors"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 错误码常量（使用 internal/errors 包的定义）
const (
	CodeSuccess = appErrors.CodeSuccess

	CodeInvalidParams = appErrors.CodeInvalidParams
	CodeTokenInvalid  = appErrors.CodeTokenInvalid
	CodeTokenExpired  = appErrors.CodeTokenExpired

	CodeRecordNotFound = appErrors.CodeRecordNotFound

	CodeServerError = appErrors.CodeServerError
)

var codeMessages = map[int]string{
	CodeSuccess:        "success",
	CodeInvalidParams:  appErrors.ErrInvalidParams.Message,
	CodeTokenInvalid:   appErrors.ErrTokenInvalid.Message,
	CodeTokenExpired:   appErrors.ErrTokenExpired.Message,
	CodeRecordNotFound: appErrors.ErrRecordNotFound.Message,
	CodeServerError:    appErrors.ErrServerError.Message,
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int) {
	message := codeMessages[code]
	if message == "" {
		message = "unknown error"
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ErrorWithMsg 自定义错误消息
func ErrorWithMsg(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ErrorFromAppError 从 AppError 生成错误响应
func ErrorFromAppError(c *gin.Context, err error) {
	c.JSON(http.StatusOK, Response{
		Code:    appErrors.GetCode(err),
		Message: appErrors.GetMessage(err),
		Data:    nil,
	})
}

// Unauthorized 未认证
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:    CodeTokenInvalid,
		Message: codeMessages[CodeTokenInvalid],
		Data:    nil,
	})
}

// Unavailable 依赖未就绪
func Unavailable(c *gin.Context, data interface{}) {
	c.JSON(http.StatusServiceUnavailable, Response{
		Code:    CodeServerError,
		Message: "service unavailable",
		Data:    data,
	})
}
