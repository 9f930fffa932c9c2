package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shortlink-qr/internal/apperrors"
	"shortlink-qr/internal/dto"
	"shortlink-qr/internal/service"
	"shortlink-qr/response"
)

type ShortLinkHandler struct {
	links   *service.LinkService
	stats   *service.StatsService
	baseURL string
	logger  *zap.Logger
}

func NewShortLinkHandler(links *service.LinkService, stats *service.StatsService, baseURL string, logger *zap.Logger) *ShortLinkHandler {
	return &ShortLinkHandler{links: links, stats: stats, baseURL: baseURL, logger: logger}
}

// host 优先使用配置的 base_url，否则按请求推断
func (h *ShortLinkHandler) host(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	} else if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + c.Request.Host
}

// Shorten POST /api/shorten
func (h *ShortLinkHandler) Shorten(c *gin.Context) {
	var req dto.CreateShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		abortWith(c, bindError(err, &req))
		return
	}
	if err := req.Validate(); err != nil {
		abortWith(c, apperrors.BadRequest(err.Error()))
		return
	}

	created, err := h.links.Create(c.Request.Context(), service.CreateLinkInput{
		OriginalURL: req.OriginalURL,
		CustomCode:  req.CustomCode,
		ExpiresAt:   req.ExpiresAt,
		Password:    req.Password,
	}, h.host(c))
	if err != nil {
		h.logger.Warn("Short link creation failed",
			zap.Error(err),
			zap.String("custom_code", req.CustomCode),
		)
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.OK(dto.ShortenResponse{URL: created.ShortURL}, "Short link created"))
}

// Redirect GET /:shortCode
func (h *ShortLinkHandler) Redirect(c *gin.Context) {
	var password *string
	if pw, ok := c.GetQuery("password"); ok {
		password = &pw
	}

	target, err := h.links.Resolve(c.Request.Context(), c.Param("shortCode"), password, service.VisitMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})
	if err != nil {
		abortWith(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Redirect(http.StatusFound, target)
}

// Analytics GET /api/analytics/:shortCode
func (h *ShortLinkHandler) Analytics(c *gin.Context) {
	analytics, err := h.links.GetAnalytics(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(analytics, "success"))
}

// DailyStats GET /api/analytics/:shortCode/daily
func (h *ShortLinkHandler) DailyStats(c *gin.Context) {
	stats, err := h.stats.GetDailyStats(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(stats, "success"))
}
