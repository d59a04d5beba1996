package response

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 下载类响应使用的 MIME
const (
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// RequestIDKey 请求追踪 ID 在 gin.Context 中的键，由 RequestID 中间件写入
const RequestIDKey = "request_id"

// Response 统一响应结构
// 错误响应带上 request_id，便于用户回报问题时对照日志
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Details   string      `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Attachment 200 文件下载
// 文件名按 RFC 5987 编码，中文文件名在各浏览器下都能正确显示
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, contentType, data)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	ErrorWithDetails(c, httpStatus, code, message, "")
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: c.GetString(RequestIDKey),
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// UnprocessableEntity 422 请求格式正确但内容无法处理（如范本结构不符）
func UnprocessableEntity(c *gin.Context, code int, message, details string) {
	ErrorWithDetails(c, http.StatusUnprocessableEntity, code, message, details)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "服务器内部错误")
}
