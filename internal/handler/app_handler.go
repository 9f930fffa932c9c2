package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shortlink-qr/internal/config"
	"shortlink-qr/internal/dto"
	"shortlink-qr/internal/geo"
	"shortlink-qr/response"
)

type AppHandler struct {
	app     config.AppConfig
	locator geo.Locator
}

func NewAppHandler(app config.AppConfig, locator geo.Locator) *AppHandler {
	if locator == nil {
		locator = geo.Noop{}
	}
	return &AppHandler{app: app, locator: locator}
}

// Home GET /
func (h *AppHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, response.OK(dto.AppInfoResponse{Name: h.app.Name, Version: h.app.Version}, "success"))
}

// Geo GET /api/geo，返回调用方 IP 的地理位置
func (h *AppHandler) Geo(c *gin.Context) {
	ip := c.ClientIP()
	c.JSON(http.StatusOK, response.OK(dto.GeoResponse{Geo: h.locator.Lookup(ip), IP: ip}, "success"))
}
