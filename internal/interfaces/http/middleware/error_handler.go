package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "github.com/easayliu/http-folder/internal/shared/errors"
	"github.com/easayliu/http-folder/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 将handler通过c.Error设置的错误渲染为纯文本响应:
// ServiceError按错误码映射状态码，其余错误一律400并返回错误信息
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if serviceErr, ok := apperrors.AsServiceError(err); ok {
			c.String(serviceErr.HTTPStatus(), serviceErr.Message)
			return
		}

		c.String(http.StatusBadRequest, err.Error())
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为400错误，正文为panic信息
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			message := fmt.Sprint(recovered)
			if err, ok := recovered.(error); ok {
				message = err.Error()
			}

			logger.Error("Panic recovered",
				"method", c.Request.Method,
				"url", c.Request.URL.RequestURI(),
				"error", message,
				"stack", string(debug.Stack()))

			if !c.Writer.Written() {
				c.String(http.StatusBadRequest, message)
			}
			c.Abort()
		}()
		c.Next()
	}
}
