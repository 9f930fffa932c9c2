package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shortlink-qr/internal/apperrors"
	"shortlink-qr/internal/i18n"
	"shortlink-qr/response"
)

// GlobalErrorMiddleware 全局错误中间件
func GlobalErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, err := range c.Errors {
			var appErr *apperrors.AppError
			if errors.As(err.Err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError {
					logger.Error("Request failed",
						zap.String("path", c.Request.URL.Path),
						zap.String("kind", string(appErr.Kind)),
						zap.Error(appErr),
					)
				}
				msg := i18n.T(c.Request.Context(), appErr.Message, nil)
				c.AbortWithStatusJSON(appErr.Code, response.Error(msg))
				return
			}
		}

		// 默认处理未定义的错误
		logger.Error("Unhandled request error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(c.Errors.Last().Err),
		)
		msg := i18n.T(c.Request.Context(), apperrors.MsgSystem, nil)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(msg))
	}
}
