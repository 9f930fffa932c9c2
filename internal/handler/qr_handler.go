package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shortlink-qr/constant"
	"shortlink-qr/internal/dto"
	"shortlink-qr/internal/service"
	"shortlink-qr/pkg/utils"
)

type QRHandler struct {
	qr     *service.QRService
	logger *zap.Logger
}

func NewQRHandler(qr *service.QRService, logger *zap.Logger) *QRHandler {
	return &QRHandler{qr: qr, logger: logger}
}

// Generate GET /api/qr/generate?url=&download=&filename=
func (h *QRHandler) Generate(c *gin.Context) {
	var req dto.QRCodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWith(c, bindError(err, &req))
		return
	}

	img, err := h.qr.Generate(c.Request.Context(), req.URL)
	if err != nil {
		abortWith(c, err)
		return
	}

	if req.WantsDownload() {
		filename := utils.SanitizeFilename(req.Filename, constant.DefaultQRFilename)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	}
	c.Data(http.StatusOK, "image/png", img)
}
