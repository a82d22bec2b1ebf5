package util

import (
	"errors"
	"io"
	"lms_authoring_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// ValidationFailed 返回 400，Data 中带上字段信息
func ValidationFailed(c *gin.Context, ve *ValidationError) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: ve.Error(),
		Data:    ve,
	})
}

// BindError 把 gin 绑定错误转换成可读的字段错误
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		ValidationFailed(c, &ValidationError{
			Field:   fe.Field(),
			Message: bindMessage(fe),
		})
		return
	}
	BadRequest(c, err.Error())
}

// BindOptionalJSON 绑定可选的 JSON 请求体，请求体为空时返回 false
// 不依赖 Content-Length，分块传输的请求同样会被读取
func BindOptionalJSON(c *gin.Context, obj interface{}) (bool, error) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return false, nil
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func bindMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "email":
		return "must be a valid email"
	}
	return "failed on " + fe.Tag()
}

// HandleError 按错误类别选择响应码
func HandleError(c *gin.Context, err error) {
	if ve, ok := AsValidation(err); ok {
		ValidationFailed(c, ve)
		return
	}
	switch {
	case errors.Is(err, ErrQuestionNotInScope):
		BadRequest(c, err.Error())
	case IsNotFound(err):
		Error(c, http.StatusNotFound, err.Error())
	case IsConflict(err):
		Conflict(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
