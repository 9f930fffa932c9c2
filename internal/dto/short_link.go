package dto

import (
	"time"

	"shortlink-qr/pkg/utils"
)

// CreateShortLinkRequest 用于创建短链的请求参数
type CreateShortLinkRequest struct {
	OriginalURL string     `json:"originalUrl" binding:"required,url,max=2048" msg:"error.target_url_invalid"` // Gin 内置 URL 校验
	CustomCode  string     `json:"customCode" binding:"omitempty,max=64" msg:"error.shortcode_invalid"`
	ExpiresAt   *time.Time `json:"expiresAt"` // RFC3339
	Password    *string    `json:"password"`
}

// Validate 自定义验证逻辑
func (r *CreateShortLinkRequest) Validate() error {
	if err := utils.ValidateTargetURL(r.OriginalURL); err != nil {
		return err
	}
	// 自定义短码可选
	if r.CustomCode != "" {
		if err := utils.ValidateShortCode(r.CustomCode); err != nil {
			return err
		}
	}
	return nil
}

type ShortenResponse struct {
	URL string `json:"url"`
}

type VisitResponse struct {
	IP        *string   `json:"ip"`
	UserAgent *string   `json:"userAgent"`
	Referrer  *string   `json:"referrer"`
	Location  *string   `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalyticsResponse 访问记录按创建顺序排列
type AnalyticsResponse struct {
	OriginalURL string          `json:"originalUrl"`
	Clicks      int64           `json:"clicks"`
	Visits      []VisitResponse `json:"visits"`
}

type DailyStatResponse struct {
	Date string `json:"date"`
	PV   int64  `json:"pv"`
	UV   int64  `json:"uv"`
}
