package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shortlink-qr/internal/model"
)

// VisitAggregate 某个时间窗口内单条短链的访问汇总
type VisitAggregate struct {
	ShortLinkID uint
	PV          int64
	UV          int64
}

type StatsStore struct {
	db *gorm.DB
}

func NewStatsStore(db *gorm.DB) *StatsStore {
	return &StatsStore{db: db}
}

// AggregateVisits 统计 [start, end) 内每条短链的 PV 和按 IP 去重的 UV
func (s *StatsStore) AggregateVisits(ctx context.Context, start, end time.Time) ([]VisitAggregate, error) {
	var rows []VisitAggregate
	err := s.db.WithContext(ctx).
		Model(&model.Visit{}).
		Select("short_link_id, COUNT(*) AS pv, COUNT(DISTINCT ip) AS uv").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("short_link_id").
		Scan(&rows).Error
	return rows, err
}

// UpsertDailyStat 写入或覆盖某天的统计
func (s *StatsStore) UpsertDailyStat(ctx context.Context, linkID uint, date string, pv, uv int64) error {
	var stat model.DailyStat
	return s.db.WithContext(ctx).
		Where(model.DailyStat{ShortLinkID: linkID, Date: date}).
		Assign(map[string]interface{}{"pv": pv, "uv": uv}).
		FirstOrCreate(&stat).Error
}

// ListDailyStats 按日期倒序返回短链的每日统计
func (s *StatsStore) ListDailyStats(ctx context.Context, linkID uint) ([]model.DailyStat, error) {
	stats := make([]model.DailyStat, 0)
	err := s.db.WithContext(ctx).
		Where("short_link_id = ?", linkID).
		Order("date DESC").
		Find(&stats).Error
	return stats, err
}

// Ping 检查数据库是否可达
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
