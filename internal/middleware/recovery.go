package middleware

import (
	"errors"
	"lms_authoring_backend/internal/util"
	"lms_authoring_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if err, ok := rvr.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rvr)
				}
				logger.Log.Error("Panic recovered",
					zap.Any("recover", rvr),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("ip", c.ClientIP()),
					zap.String("request_id", c.GetString("request_id")),
				)
				util.InternalServerError(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}
