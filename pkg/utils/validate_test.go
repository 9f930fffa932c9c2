package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateShortCode(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"abc", nil},
		{"A-b_9", nil},
		{"", ErrShortCodeRequired},
		{"a b", ErrShortCodeSpaces},
		{"a/b", ErrShortCodeInvalid},
		{"api?x", ErrShortCodeInvalid},
		{strings.Repeat("a", MaxShortCodeLength+1), ErrShortCodeInvalid},
		{"metrics", ErrShortCodeReserved},
		{"Metrics", nil},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateShortCode(tt.code))
		})
	}
}

func TestValidateTargetURL(t *testing.T) {
	assert.NoError(t, ValidateTargetURL("https://example.com/a"))
	assert.NoError(t, ValidateTargetURL("http://localhost:3000/x?y=1"))
	assert.Equal(t, ErrTargetURLRequired, ValidateTargetURL(""))
	assert.Equal(t, ErrTargetURLInvalid, ValidateTargetURL("example.com/a"))
	assert.Equal(t, ErrTargetURLInvalid, ValidateTargetURL("javascript:alert(1)"))
	assert.Equal(t, ErrTargetURLInvalid, ValidateTargetURL("ftp://example.com"))
	assert.Equal(t, ErrTargetURLMaxLength, ValidateTargetURL("https://example.com/"+strings.Repeat("a", MaxTargetURLLength)))
}

func TestNormalizeQRURL(t *testing.T) {
	const domain = "flavorqueste.com"

	got, err := NormalizeQRURL("https://flavorqueste.com/recipes/", domain)
	assert.NoError(t, err)
	assert.Equal(t, "https://flavorqueste.com/recipes", got)

	got, err = NormalizeQRURL("https://www.flavorqueste.com", domain)
	assert.NoError(t, err)
	assert.Equal(t, "https://www.flavorqueste.com", got)

	_, err = NormalizeQRURL("", domain)
	assert.Equal(t, ErrURLRequired, err)

	_, err = NormalizeQRURL("not a url", domain)
	assert.Equal(t, ErrURLInvalid, err)

	_, err = NormalizeQRURL("https://evil.example/flavorqueste.com", domain)
	assert.Equal(t, ErrURLDomainNotAllowed, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "menu.png", SanitizeFilename("menu.png", "qr-code.png"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd", "qr-code.png"))
	assert.Equal(t, "ab.png", SanitizeFilename("a\"b\r\n.png", "qr-code.png"))
	assert.Equal(t, "qr-code.png", SanitizeFilename("", "qr-code.png"))
}
