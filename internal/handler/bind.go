package handler

import (
	"errors"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"shortlink-qr/internal/apperrors"
)

// bindError 将绑定错误转换为 BadRequest，优先使用字段上的 msg 标签
func bindError(err error, req any) *apperrors.AppError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		t := reflect.TypeOf(req)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		for _, e := range validationErrs {
			// 通过反射获取字段的 msg 标签值
			field, ok := t.FieldByName(e.StructField())
			if !ok {
				continue
			}
			if customMsg := field.Tag.Get("msg"); customMsg != "" {
				return apperrors.BadRequest(customMsg)
			}
		}
	}
	return apperrors.BadRequestDefault()
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
