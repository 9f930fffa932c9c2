package middleware

import (
	"github.com/gin-gonic/gin"
	thirdPartyI18n "github.com/nicksnyder/go-i18n/v2/i18n"

	"shortlink-qr/internal/i18n"
)

// I18nMiddleware 按 Accept-Language 选择语言，Localizer 放入请求 context
func I18nMiddleware(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := bundle.Match(c.GetHeader("Accept-Language"))
		localizer := thirdPartyI18n.NewLocalizer(bundle.Bundle, lang)
		c.Request = c.Request.WithContext(i18n.WithLocalizer(c.Request.Context(), localizer))
		c.Next()
	}
}
