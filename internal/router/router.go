package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shortlink-qr/internal/handler"
	"shortlink-qr/internal/i18n"
	"shortlink-qr/internal/metrics"
	"shortlink-qr/internal/middleware"
)

type Handlers struct {
	ShortLink *handler.ShortLinkHandler
	QR        *handler.QRHandler
	App       *handler.AppHandler
}

// New 组装中间件和路由
func New(h Handlers, bundle *i18n.Bundle, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// 日志在最外层，才能记录错误中间件写入的状态码
	r.Use(middleware.ZapGinLogger(logger))
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.I18nMiddleware(bundle))
	r.Use(middleware.GlobalErrorMiddleware(logger))

	r.GET("/", h.App.Home)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		api.POST("/shorten", h.ShortLink.Shorten)
		api.GET("/analytics/:shortCode", h.ShortLink.Analytics)
		api.GET("/analytics/:shortCode/daily", h.ShortLink.DailyStats)
		api.GET("/qr/generate", h.QR.Generate)
		api.GET("/geo", h.App.Geo)
	}

	r.GET("/:shortCode", h.ShortLink.Redirect)
	return r
}
