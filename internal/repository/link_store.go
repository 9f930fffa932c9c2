package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shortlink-qr/internal/model"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateCode 短码已被占用（唯一索引冲突）
	ErrDuplicateCode = errors.New("duplicate short code")
)

// LinkStore 短链与访问记录的持久化
type LinkStore struct {
	db *gorm.DB
}

func NewLinkStore(db *gorm.DB) *LinkStore {
	return &LinkStore{db: db}
}

func (s *LinkStore) FindByCode(ctx context.Context, code string) (*model.ShortLink, error) {
	var link model.ShortLink
	err := s.db.WithContext(ctx).Where("short_code = ?", code).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Create 插入短链，短码重复时返回 ErrDuplicateCode
func (s *LinkStore) Create(ctx context.Context, link *model.ShortLink) error {
	err := s.db.WithContext(ctx).Create(link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCode
	}
	return err
}

// IncrementClicks 原子地将点击数加一
func (s *LinkStore) IncrementClicks(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).
		Model(&model.ShortLink{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *LinkStore) AppendVisit(ctx context.Context, visit *model.Visit) error {
	return s.db.WithContext(ctx).Create(visit).Error
}

// FindWithVisits 查询短链及其全部访问记录，访问记录按写入顺序返回
func (s *LinkStore) FindWithVisits(ctx context.Context, code string) (*model.ShortLink, []model.Visit, error) {
	link, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	visits := make([]model.Visit, 0)
	if err := s.db.WithContext(ctx).
		Where("short_link_id = ?", link.ID).
		Order("id ASC").
		Find(&visits).Error; err != nil {
		return nil, nil, err
	}
	return link, visits, nil
}
