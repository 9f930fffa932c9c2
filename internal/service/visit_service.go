package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"shortlink-qr/internal/geo"
	"shortlink-qr/internal/model"
)

// VisitMeta 跳转请求携带的访问信息
type VisitMeta struct {
	IP        string
	UserAgent string
	Referrer  string
}

type VisitStore interface {
	AppendVisit(ctx context.Context, visit *model.Visit) error
}

// VisitRecorder 解析地理位置并追加访问记录
type VisitRecorder struct {
	store   VisitStore
	locator geo.Locator
	logger  *zap.Logger
	now     func() time.Time
}

func NewVisitRecorder(store VisitStore, locator geo.Locator, logger *zap.Logger) *VisitRecorder {
	if locator == nil {
		locator = geo.Noop{}
	}
	return &VisitRecorder{
		store:   store,
		locator: locator,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Record 追加一条访问记录；地理位置解析失败只会让 location 为空
func (r *VisitRecorder) Record(ctx context.Context, linkID uint, meta VisitMeta) error {
	var location *string
	if meta.IP != "" {
		location = optional(r.locator.Lookup(meta.IP).Country)
	}

	visit := &model.Visit{
		ShortLinkID: linkID,
		IP:          optional(meta.IP),
		UserAgent:   optional(meta.UserAgent),
		Referrer:    optional(meta.Referrer),
		Location:    location,
		CreatedAt:   r.now(),
	}
	return r.store.AppendVisit(ctx, visit)
}
