package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shortlink-qr/internal/apperrors"
	"shortlink-qr/internal/dto"
	"shortlink-qr/internal/metrics"
	"shortlink-qr/internal/model"
	"shortlink-qr/internal/repository"
)

// LinkStore 短链记录存储
type LinkStore interface {
	FindByCode(ctx context.Context, code string) (*model.ShortLink, error)
	Create(ctx context.Context, link *model.ShortLink) error
	IncrementClicks(ctx context.Context, id uint) error
	FindWithVisits(ctx context.Context, code string) (*model.ShortLink, []model.Visit, error)
}

// CreateLinkInput 已在请求边界校验过的创建参数
type CreateLinkInput struct {
	OriginalURL string
	CustomCode  string
	ExpiresAt   *time.Time
	Password    *string
}

type CreatedLink struct {
	Link     *model.ShortLink
	ShortURL string
}

type LinkService struct {
	store      LinkStore
	codes      *CodeGenerator
	visits     *VisitRecorder
	logger     *zap.Logger
	now        func() time.Time
	bcryptCost int
}

func NewLinkService(store LinkStore, codes *CodeGenerator, visits *VisitRecorder, logger *zap.Logger) *LinkService {
	return &LinkService{
		store:      store,
		codes:      codes,
		visits:     visits,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		bcryptCost: bcrypt.DefaultCost,
	}
}

// storeError 将存储层错误映射为业务错误
func storeError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound()
	}
	return apperrors.TransientStoreFailure(err)
}

// Create 创建短链。短码已存在时返回 CodeConflict，不会产生部分写入；
// 并发创建同一短码时由唯一索引保证只有一个成功
func (s *LinkService) Create(ctx context.Context, in CreateLinkInput, host string) (*CreatedLink, error) {
	code, custom, err := s.codes.Pick(in.CustomCode)
	if err != nil {
		return nil, apperrors.SystemErrorDefault()
	}

	if _, err := s.store.FindByCode(ctx, code); err == nil {
		s.logger.Info("Short code already in use", zap.String("short_code", code))
		return nil, apperrors.CodeConflict()
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to query short code", zap.String("short_code", code), zap.Error(err))
		return nil, apperrors.TransientStoreFailure(err)
	}

	link := &model.ShortLink{
		ShortCode:   code,
		OriginalURL: in.OriginalURL,
		Custom:      custom,
		ExpiresAt:   in.ExpiresAt,
		Clicks:      0,
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("Failed to hash link password", zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}
		hashed := string(hash)
		link.PasswordHash = &hashed
	}

	if err := s.store.Create(ctx, link); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			s.logger.Info("Lost short code race", zap.String("short_code", code))
			return nil, apperrors.CodeConflict()
		}
		s.logger.Error("Failed to create short link", zap.String("short_code", code), zap.Error(err))
		return nil, apperrors.TransientStoreFailure(err)
	}

	metrics.LinksCreated.Inc()
	return &CreatedLink{
		Link:     link,
		ShortURL: strings.TrimSuffix(host, "/") + "/" + code,
	}, nil
}

// Resolve 校验短链状态并返回原始 URL。
// 成功时先追加访问记录再累加点击数，两步失败都只记录日志，不影响跳转
func (s *LinkService) Resolve(ctx context.Context, code string, password *string, meta VisitMeta) (string, error) {
	link, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.ResolveRejected.WithLabelValues("not_found").Inc()
		} else {
			s.logger.Error("Failed to load short link", zap.String("short_code", code), zap.Error(err))
		}
		return "", storeError(err)
	}

	if link.Expired(s.now()) {
		metrics.ResolveRejected.WithLabelValues("expired").Inc()
		return "", apperrors.NotFound()
	}

	if link.Protected() {
		if password == nil || *password == "" ||
			bcrypt.CompareHashAndPassword([]byte(*link.PasswordHash), []byte(*password)) != nil {
			metrics.ResolveRejected.WithLabelValues("unauthorized").Inc()
			return "", apperrors.Unauthorized()
		}
	}

	// 客户端断开不应中断访问统计
	sideCtx := context.WithoutCancel(ctx)

	if err := s.visits.Record(sideCtx, link.ID, meta); err != nil {
		metrics.VisitSideEffectFailures.WithLabelValues("visit").Inc()
		s.logger.Error("Failed to record visit",
			zap.String("short_code", code),
			zap.Uint("link_id", link.ID),
			zap.Error(err),
		)
	}
	if err := s.store.IncrementClicks(sideCtx, link.ID); err != nil {
		metrics.VisitSideEffectFailures.WithLabelValues("clicks").Inc()
		s.logger.Error("Failed to increment clicks",
			zap.String("short_code", code),
			zap.Uint("link_id", link.ID),
			zap.Error(err),
		)
	}

	metrics.Redirects.Inc()
	return link.OriginalURL, nil
}

// GetAnalytics 返回点击数和全部访问记录；过期的短链同样可以查询
func (s *LinkService) GetAnalytics(ctx context.Context, code string) (*dto.AnalyticsResponse, error) {
	link, visits, err := s.store.FindWithVisits(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("Failed to load analytics", zap.String("short_code", code), zap.Error(err))
		}
		return nil, storeError(err)
	}

	resp := &dto.AnalyticsResponse{
		OriginalURL: link.OriginalURL,
		Clicks:      link.Clicks,
		Visits:      make([]dto.VisitResponse, 0, len(visits)),
	}
	for _, v := range visits {
		resp.Visits = append(resp.Visits, dto.VisitResponse{
			IP:        v.IP,
			UserAgent: v.UserAgent,
			Referrer:  v.Referrer,
			Location:  v.Location,
			Timestamp: v.CreatedAt,
		})
	}
	return resp, nil
}
