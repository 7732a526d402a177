package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码定义
const (
	CodeSuccess          = 0
	CodeParamError       = 1000
	CodeAuthFailed       = 1001
	CodePermissionDenied = 1002
	CodeResourceNotFound = 1003
	CodePaymentError     = 1004
	CodeInsufficientFund = 1005
	CodeServerError      = 5000
)

// 错误码对应的默认消息（面向用户，葡语）
var codeMessages = map[int]string{
	CodeSuccess:          "success",
	CodeParamError:       "Parâmetros inválidos",
	CodeAuthFailed:       "Falha na autenticação",
	CodePermissionDenied: "Permissão negada",
	CodeResourceNotFound: "Recurso não encontrado",
	CodePaymentError:     "Erro ao processar o pagamento",
	CodeInsufficientFund: "Saldo insuficiente",
	CodeServerError:      "Erro interno. Tente novamente.",
}

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ParamError 参数错误
func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

// AuthError 认证失败
func AuthError(c *gin.Context, message string) {
	Error(c, CodeAuthFailed, message)
}

// PermissionError 权限不足
func PermissionError(c *gin.Context, message string) {
	Error(c, CodePermissionDenied, message)
}

// NotFoundError 资源不存在
func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message)
}

// PaymentError 支付相关错误
func PaymentError(c *gin.Context, message string) {
	Error(c, CodePaymentError, message)
}

// InsufficientFundError 余额不足
func InsufficientFundError(c *gin.Context, message string) {
	Error(c, CodeInsufficientFund, message)
}

// ServerError 服务器错误
func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}
