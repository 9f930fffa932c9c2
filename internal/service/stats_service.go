package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shortlink-qr/constant"
	"shortlink-qr/internal/dto"
	"shortlink-qr/internal/model"
	"shortlink-qr/internal/repository"
)

type StatsStore interface {
	AggregateVisits(ctx context.Context, start, end time.Time) ([]repository.VisitAggregate, error)
	UpsertDailyStat(ctx context.Context, linkID uint, date string, pv, uv int64) error
	ListDailyStats(ctx context.Context, linkID uint) ([]model.DailyStat, error)
}

// StatsService 将访问记录按天汇总为 PV/UV
type StatsService struct {
	stats  StatsStore
	links  LinkStore
	logger *zap.Logger
	now    func() time.Time
}

func NewStatsService(stats StatsStore, links LinkStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		stats:  stats,
		links:  links,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RollupDay 重新计算某一天（UTC）的每日统计，重复执行结果一致
func (s *StatsService) RollupDay(ctx context.Context, day time.Time) error {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	date := constant.GetDateKey(start)

	rows, err := s.stats.AggregateVisits(ctx, start, end)
	if err != nil {
		return fmt.Errorf("aggregate visits for %s: %w", date, err)
	}

	var errs []error
	for _, row := range rows {
		if err := s.stats.UpsertDailyStat(ctx, row.ShortLinkID, date, row.PV, row.UV); err != nil {
			s.logger.Error("Failed to upsert daily stat",
				zap.Uint("link_id", row.ShortLinkID),
				zap.String("date", date),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}

	s.logger.Info("Daily stats rolled up", zap.String("date", date), zap.Int("links", len(rows)))
	return errors.Join(errs...)
}

// Rollup 定时任务入口：汇总今天，同时补齐昨天最后一段时间的访问
func (s *StatsService) Rollup(ctx context.Context) error {
	today := s.now()
	return errors.Join(
		s.RollupDay(ctx, today.AddDate(0, 0, -1)),
		s.RollupDay(ctx, today),
	)
}

// GetDailyStats 返回短链的每日统计，日期倒序
func (s *StatsService) GetDailyStats(ctx context.Context, code string) ([]dto.DailyStatResponse, error) {
	link, err := s.links.FindByCode(ctx, code)
	if err != nil {
		return nil, storeError(err)
	}

	stats, err := s.stats.ListDailyStats(ctx, link.ID)
	if err != nil {
		s.logger.Error("Failed to list daily stats", zap.String("short_code", code), zap.Error(err))
		return nil, storeError(err)
	}

	resp := make([]dto.DailyStatResponse, 0, len(stats))
	for _, st := range stats {
		resp = append(resp, dto.DailyStatResponse{Date: st.Date, PV: st.PV, UV: st.UV})
	}
	return resp, nil
}
