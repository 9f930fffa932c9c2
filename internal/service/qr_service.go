package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"shortlink-qr/constant"
	"shortlink-qr/internal/apperrors"
	"shortlink-qr/internal/metrics"
	"shortlink-qr/pkg/utils"
)

type QRCacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	SetWithTTL(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type QRRenderer interface {
	Render(content string) ([]byte, error)
}

// QRService 二维码生成与缓存
type QRService struct {
	cache         QRCacheStore
	renderer      QRRenderer
	allowedDomain string
	ttl           time.Duration
	logger        *zap.Logger
}

func NewQRService(cache QRCacheStore, renderer QRRenderer, allowedDomain string, ttl time.Duration, logger *zap.Logger) *QRService {
	if ttl <= 0 {
		ttl = constant.QRCacheTTL
	}
	return &QRService{
		cache:         cache,
		renderer:      renderer,
		allowedDomain: allowedDomain,
		ttl:           ttl,
		logger:        logger,
	}
}

func qrValidationError(err error) error {
	switch {
	case errors.Is(err, utils.ErrURLRequired):
		return apperrors.BadRequest(apperrors.MsgURLRequired)
	case errors.Is(err, utils.ErrURLDomainNotAllowed):
		return apperrors.BadRequest(apperrors.MsgDomainNotAllowed)
	default:
		return apperrors.BadRequest(apperrors.MsgURLInvalid)
	}
}

// Generate 返回 URL 对应的二维码 PNG。
// 校验失败不会写缓存；缓存读写失败时不返回任何图片
func (s *QRService) Generate(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := utils.NormalizeQRURL(rawURL, s.allowedDomain)
	if err != nil {
		return nil, qrValidationError(err)
	}

	key := constant.GetQRCodeKey(target)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Error("Failed to read QR cache", zap.String("key", key), zap.Error(err))
		return nil, apperrors.TransientStoreFailure(err)
	}
	if ok {
		metrics.QRCache.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.QRCache.WithLabelValues("miss").Inc()

	png, err := s.renderer.Render(target)
	if err != nil {
		s.logger.Error("Failed to render QR code", zap.String("url", target), zap.Error(err))
		return nil, apperrors.ImagePipelineFailure(err)
	}
	metrics.QRGenerated.Inc()

	if err := s.cache.SetWithTTL(ctx, key, png, s.ttl); err != nil {
		s.logger.Error("Failed to write QR cache", zap.String("key", key), zap.Error(err))
		return nil, apperrors.TransientStoreFailure(err)
	}

	return png, nil
}
