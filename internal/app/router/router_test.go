package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	priceshandler "stock_analysis_backend/internal/feature/prices/transport/handler"
	"stock_analysis_backend/internal/feature/requestlog/domain/entity"
)

type mockLogRepository struct {
	entries []entity.RequestLog
}

func (m *mockLogRepository) Append(ctx context.Context, l entity.RequestLog) error {
	m.entries = append(m.entries, l)
	return nil
}

func setupRouter(repo *mockLogRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	// ハンドラー本体は呼ばないためusecaseは未設定でよい
	return NewRouter(priceshandler.NewPriceHandler(nil, nil, nil, nil), repo)
}

// TestNewRouter_CORSHeaders は登録済みルートの実レスポンスに
// CORSヘッダが付与されることを検証します。
func TestNewRouter_CORSHeaders(t *testing.T) {
	router := setupRouter(&mockLogRepository{})

	t.Run("actual request carries Access-Control-Allow-Origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "http://example.com")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight succeeds for a mutating route", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodOptions, "/clear_cache", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

// TestNewRouter_AuditScope は /healthz が監査ログの対象外で、
// 業務ルートが対象であることを検証します。
func TestNewRouter_AuditScope(t *testing.T) {
	repo := &mockLogRepository{}
	router := setupRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.entries, "health checks must not be audit-logged")
}
