package apperrors

import (
	"errors"
	"net/http"
)

// Kind 错误分类，每一类对应一个固定的 HTTP 状态码
type Kind string

const (
	KindBadRequest            Kind = "bad_request"
	KindCodeConflict          Kind = "code_conflict"
	KindNotFound              Kind = "not_found"
	KindUnauthorized          Kind = "unauthorized"
	KindTransientStoreFailure Kind = "transient_store_failure"
	KindImagePipelineFailure  Kind = "image_pipeline_failure"
	KindSystem                Kind = "system"
)

// 消息 ID，同时作为 i18n 的 MessageID 使用
const (
	MsgBadRequest       = "error.bad_request"
	MsgURLRequired      = "error.url_required"
	MsgDomainNotAllowed = "error.domain_not_allowed"
	MsgURLInvalid       = "error.url_invalid"
	MsgCodeConflict     = "error.code_conflict"
	MsgNotFound         = "error.not_found"
	MsgUnauthorized     = "error.unauthorized"
	MsgStoreUnavailable = "error.store_unavailable"
	MsgQRGeneration     = "error.qr_generation"
	MsgSystem           = "error.system"
)

// AppError 自定义错误类型
type AppError struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is 按 Kind 比较，便于 errors.Is(err, apperrors.NotFound())
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, code int, message string, cause error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Cause: cause}
}

// BadRequest 参数校验失败
func BadRequest(message string) *AppError {
	return newError(KindBadRequest, http.StatusBadRequest, message, nil)
}

// BadRequestDefault 默认参数校验错误
func BadRequestDefault() *AppError {
	return BadRequest(MsgBadRequest)
}

func CodeConflict() *AppError {
	return newError(KindCodeConflict, http.StatusConflict, MsgCodeConflict, nil)
}

// NotFound 短码不存在或已过期，两种情况对调用方不可区分
func NotFound() *AppError {
	return newError(KindNotFound, http.StatusNotFound, MsgNotFound, nil)
}

func Unauthorized() *AppError {
	return newError(KindUnauthorized, http.StatusUnauthorized, MsgUnauthorized, nil)
}

// TransientStoreFailure 存储不可达，不在内部重试
func TransientStoreFailure(cause error) *AppError {
	return newError(KindTransientStoreFailure, http.StatusServiceUnavailable, MsgStoreUnavailable, cause)
}

// ImagePipelineFailure 图片生成/编解码失败，对外只暴露通用错误
func ImagePipelineFailure(cause error) *AppError {
	return newError(KindImagePipelineFailure, http.StatusInternalServerError, MsgQRGeneration, cause)
}

// SystemErrorDefault 默认系统内部错误
func SystemErrorDefault() *AppError {
	return newError(KindSystem, http.StatusInternalServerError, MsgSystem, nil)
}

// KindOf 返回 err 链上第一个 AppError 的 Kind，非 AppError 视为系统错误
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindSystem
}
