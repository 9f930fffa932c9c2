package model

import "time"

type ShortLink struct {
	BaseModel
	ShortCode    string     `gorm:"uniqueIndex;size:64;not null" json:"shortCode"`
	OriginalURL  string     `gorm:"size:2048;not null" json:"originalUrl"`
	Custom       bool       `gorm:"not null;default:false" json:"custom"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	PasswordHash *string    `gorm:"size:255" json:"-"`
	Clicks       int64      `gorm:"not null;default:0" json:"clicks"`
}

// Expired 是否已过期（ExpiresAt 为空表示永不过期）
func (l *ShortLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// Protected 是否设置了访问密码
func (l *ShortLink) Protected() bool {
	return l.PasswordHash != nil && *l.PasswordHash != ""
}
