package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"shortlink-qr/internal/apperrors"
	"shortlink-qr/internal/i18n"
)

func newEngine(t *testing.T, logger *zap.Logger, h gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	en := filepath.Join(dir, "en.toml")
	zh := filepath.Join(dir, "zh.toml")
	require.NoError(t, os.WriteFile(en, []byte("\"error.not_found\" = \"Short URL not found\"\n\"error.system\" = \"System error\"\n"), 0o644))
	require.NoError(t, os.WriteFile(zh, []byte("\"error.not_found\" = \"短链接不存在\"\n"), 0o644))
	bundle, err := i18n.Load([]string{en, zh}, "en")
	require.NoError(t, err)

	r := gin.New()
	r.Use(ZapGinLogger(logger), I18nMiddleware(bundle), GlobalErrorMiddleware(logger))
	r.GET("/t", h)
	return r
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestGlobalErrorMiddleware_LocalizesAppError(t *testing.T) {
	r := newEngine(t, zap.NewNop(), func(c *gin.Context) {
		_ = c.Error(apperrors.NotFound())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Short URL not found", body(t, w)["message"])
	assert.Equal(t, false, body(t, w)["success"])

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set("Accept-Language", "zh-CN")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "短链接不存在", body(t, w)["message"])
}

func TestGlobalErrorMiddleware_UnknownError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(t, zap.New(core), func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "System error", body(t, w)["message"])

	assert.Equal(t, 1, logs.FilterMessage("Unhandled request error").Len())
	// 访问日志记录的是最终状态码
	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, http.StatusInternalServerError, entries[0].ContextMap()["status"])
}

func TestGlobalErrorMiddleware_MissingTranslation(t *testing.T) {
	r := newEngine(t, zap.NewNop(), func(c *gin.Context) {
		_ = c.Error(apperrors.BadRequest("error.custom"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error.custom", body(t, w)["message"])
}

func TestCorsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorsMiddleware())
	r.GET("/t", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/t", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Content-Disposition", w.Header().Get("Access-Control-Expose-Headers"))
}
