package constant

import "time"

// 常量定义
const (
	QRPrefix = "qr:"

	// QRCacheTTL 二维码缓存时间
	QRCacheTTL = 24 * time.Hour

	// DefaultQRFilename 下载时未指定文件名使用的默认值
	DefaultQRFilename = "qr-code.png"
)

// GetQRCodeKey 生成二维码缓存 key（格式：qr:<normalized url>）
//
// key 直接使用规范化后的 URL 而非哈希，只有完全相同的 URL 才会命中同一条缓存
func GetQRCodeKey(normalizedURL string) string {
	return QRPrefix + normalizedURL
}

// GetDateKey 生成日期字符串（格式：yyyy-MM-dd），用于每日统计
func GetDateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
