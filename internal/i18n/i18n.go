package i18n

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type localizerKey struct{}

// Bundle 消息包及其支持的语言（由文件名得出，如 en.toml -> "en"）
type Bundle struct {
	*i18n.Bundle
	DefaultLang string
	Supported   []string
}

// Load 初始化 i18n 消息包
func Load(filePaths []string, defaultLang string) (*Bundle, error) {
	bundle := i18n.NewBundle(language.MustParse(defaultLang))
	// 注册 TOML 解析器
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	b := &Bundle{Bundle: bundle, DefaultLang: defaultLang}
	for _, filePath := range filePaths {
		file, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(file, filePath); err != nil {
			return nil, err
		}
		b.Supported = append(b.Supported, extractLanguageFromPath(filePath))
	}
	return b, nil
}

func extractLanguageFromPath(filePath string) string {
	baseName := filepath.Base(filePath)
	return strings.TrimSuffix(baseName, filepath.Ext(baseName))
}

// Match 从 Accept-Language 中选出第一个支持的语言
func (b *Bundle) Match(acceptLanguage string) string {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	for _, tag := range tags {
		base, _ := tag.Base()
		for _, lang := range b.Supported {
			if lang == tag.String() || lang == base.String() {
				return lang
			}
		}
	}
	return b.DefaultLang
}

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey{}, l)
}

// T 翻译 messageID；没有 Localizer 或缺少翻译时原样返回 messageID
func T(ctx context.Context, messageID string, data map[string]interface{}) string {
	localizer, ok := ctx.Value(localizerKey{}).(*i18n.Localizer)
	if !ok {
		return messageID
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}
