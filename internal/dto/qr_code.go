package dto

// QRCodeRequest GET /api/qr/generate 的查询参数
type QRCodeRequest struct {
	URL      string `form:"url"`
	Download string `form:"download"` // 只有 "true" 表示下载
	Filename string `form:"filename"`
}

func (r *QRCodeRequest) WantsDownload() bool {
	return r.Download == "true"
}
