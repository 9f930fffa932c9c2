package utils

import (
	"errors"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

const (
	MaxShortCodeLength = 64
	MaxTargetURLLength = 2048
)

// 校验失败时返回的错误即 i18n 消息 ID
var (
	ErrShortCodeRequired   = errors.New("error.shortcode_required")
	ErrShortCodeSpaces     = errors.New("error.shortcode_cannot_contain_spaces")
	ErrShortCodeInvalid    = errors.New("error.shortcode_invalid")
	ErrShortCodeReserved   = errors.New("error.shortcode_reserved")
	ErrTargetURLRequired   = errors.New("error.target_url_required")
	ErrTargetURLInvalid    = errors.New("error.target_url_invalid")
	ErrTargetURLMaxLength  = errors.New("error.target_url_max_length")
	ErrURLRequired         = errors.New("error.url_required")
	ErrURLInvalid          = errors.New("error.url_invalid")
	ErrURLDomainNotAllowed = errors.New("error.domain_not_allowed")
)

var shortCodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// 与根路径下的固定路由同名的短码永远无法跳转
var reservedShortCodes = map[string]struct{}{
	"metrics": {},
}

// ValidateShortCode 校验 ShortCode 是否合法（单段、URL 安全字符）
func ValidateShortCode(shortCode string) error {
	if shortCode == "" {
		return ErrShortCodeRequired
	}
	if ContainsWhitespace(shortCode) {
		return ErrShortCodeSpaces
	}
	if len(shortCode) > MaxShortCodeLength || !shortCodePattern.MatchString(shortCode) {
		return ErrShortCodeInvalid
	}
	if _, ok := reservedShortCodes[shortCode]; ok {
		return ErrShortCodeReserved
	}
	return nil
}

// ValidateTargetURL 校验目标 URL 的合法性：必须是带主机名的 http(s) 绝对地址
func ValidateTargetURL(targetURL string) error {
	if targetURL == "" {
		return ErrTargetURLRequired
	}
	if len(targetURL) > MaxTargetURLLength {
		return ErrTargetURLMaxLength
	}

	u, err := url.ParseRequestURI(targetURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrTargetURLInvalid
	}
	return nil
}

// NormalizeQRURL 去掉末尾的一个斜杠并校验主机名包含 allowedDomain
func NormalizeQRURL(raw, allowedDomain string) (string, error) {
	if raw == "" {
		return "", ErrURLRequired
	}
	normalized := strings.TrimSuffix(raw, "/")

	u, err := url.Parse(normalized)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return "", ErrURLInvalid
	}
	if allowedDomain == "" || !strings.Contains(strings.ToLower(u.Hostname()), strings.ToLower(allowedDomain)) {
		return "", ErrURLDomainNotAllowed
	}
	return normalized, nil
}

// SanitizeFilename 去掉路径和会破坏 Content-Disposition 的字符
func SanitizeFilename(name, fallback string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == "/" {
		return fallback
	}
	return name
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
