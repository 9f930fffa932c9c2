package model

import "time"

// Visit 一次成功跳转的访问记录，只追加不修改
type Visit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ShortLinkID uint      `gorm:"index;not null" json:"shortLinkId"`
	IP          *string   `gorm:"size:45" json:"ip"`
	UserAgent   *string   `gorm:"type:text" json:"userAgent"`
	Referrer    *string   `gorm:"type:text" json:"referrer"`
	Location    *string   `gorm:"size:100" json:"location"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}
