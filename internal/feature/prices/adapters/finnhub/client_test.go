package finnhub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock_analysis_backend/internal/feature/prices/usecase"
)

func newTestClient(server *httptest.Server) *Client {
	cfg := Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 10 * time.Second,
	}
	return NewClient(cfg, server.Client())
}

func TestClient_GetQuote_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request parameters
		if r.URL.Path != "/quote" {
			t.Errorf("expected path /quote, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("token") != "test-key" {
			t.Errorf("expected token test-key, got %s", r.URL.Query().Get("token"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c": 100.0, "h": 110, "l": 90, "o": 95, "pc": 98.0, "v": 5000}`))
	}))
	defer server.Close()

	quote, err := newTestClient(server).GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote == nil {
		t.Fatal("expected non-nil quote")
	}

	if quote.Open != 95 || quote.High != 110 || quote.Low != 90 || quote.Close != 100.0 {
		t.Errorf("quote mismatch: %+v", quote)
	}
	if quote.Volume != 5000 {
		t.Errorf("expected volume 5000, got %d", quote.Volume)
	}
}

func TestClient_GetQuote_MissingCurrentPrice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 無効なシンボルではFinnhubはフィールドを欠いたレスポンスを返す
		_, _ = w.Write([]byte(`{"error": "Invalid symbol"}`))
	}))
	defer server.Close()

	quote, err := newTestClient(server).GetQuote(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote != nil {
		t.Errorf("expected nil quote for missing current price, got %+v", quote)
	}
}

func TestClient_GetQuote_VolumeDefaultsToZero(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c": 100.0, "h": 110, "l": 90, "o": 95}`))
	}))
	defer server.Close()

	quote, err := newTestClient(server).GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote == nil {
		t.Fatal("expected non-nil quote")
	}
	if quote.Volume != 0 {
		t.Errorf("expected volume 0 when absent, got %d", quote.Volume)
	}
}

func TestClient_GetCompanyProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		expectNil   bool
		expectName  string
		expectInd   string
		expectSector string
	}{
		{
			name:        "success: known symbol",
			body:        `{"name": "Apple Inc", "sector": "Technology", "finnhubIndustry": "Consumer Electronics"}`,
			expectName:  "Apple Inc",
			expectSector: "Technology",
			expectInd:   "Consumer Electronics",
		},
		{
			name:      "nil profile when name is missing",
			body:      `{}`,
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/stock/profile2" {
					t.Errorf("expected path /stock/profile2, got %s", r.URL.Path)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			profile, err := newTestClient(server).GetCompanyProfile(context.Background(), "AAPL")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectNil {
				if profile != nil {
					t.Errorf("expected nil profile, got %+v", profile)
				}
				return
			}
			if profile == nil {
				t.Fatal("expected non-nil profile")
			}
			if profile.Name != tt.expectName || profile.Sector != tt.expectSector || profile.Industry != tt.expectInd {
				t.Errorf("profile mismatch: %+v", profile)
			}
		})
	}
}

func TestClient_GetCandles_Success(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/candle" {
			t.Errorf("expected path /stock/candle, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("resolution") != "D" {
			t.Errorf("expected resolution D, got %s", r.URL.Query().Get("resolution"))
		}
		// fromとtoはUNIX秒で渡される
		if r.URL.Query().Get("from") != "1735689600" {
			t.Errorf("expected from 1735689600, got %s", r.URL.Query().Get("from"))
		}

		_, _ = w.Write([]byte(`{
			"s": "ok",
			"t": [1736467200, 1736553600],
			"o": [95.0, 96.5],
			"h": [110.0, 112.0],
			"l": [90.0, 91.0],
			"c": [100.0, 103.0],
			"v": [5000, 7000]
		}`))
	}))
	defer server.Close()

	candles, err := newTestClient(server).GetCandles(context.Background(), "AAPL", "D", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}

	// 並行配列がインデックスごとに1レコードへ束ねられる
	first := candles[0]
	if got := first.Time.Format("2006-01-02"); got != "2025-01-10" {
		t.Errorf("expected date 2025-01-10, got %s", got)
	}
	if first.Open != 95.0 || first.High != 110.0 || first.Low != 90.0 || first.Close != 100.0 || first.Volume != 5000 {
		t.Errorf("candle mismatch: %+v", first)
	}
}

func TestClient_GetCandles_UpstreamError(t *testing.T) {
	t.Parallel()

	raw := `{"s": "no_data", "t": null}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(raw))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetCandles(context.Background(), "AAPL", "D",
		time.Now().AddDate(0, -1, 0), time.Now())

	var ue *usecase.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != "no_data" {
		t.Errorf("expected status no_data, got %q", ue.Status)
	}
	// 生のペイロードがそのまま保持される
	if string(ue.Payload) != raw {
		t.Errorf("expected payload %q, got %q", raw, string(ue.Payload))
	}
}

func TestClient_GetCandles_MismatchedArrays(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"s": "ok", "t": [1736467200, 1736553600], "o": [95.0], "h": [110.0], "l": [90.0], "c": [100.0], "v": [5000]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetCandles(context.Background(), "AAPL", "D",
		time.Now().AddDate(0, -1, 0), time.Now())
	if err == nil {
		t.Fatal("expected error for mismatched parallel arrays")
	}
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"too many requests", http.StatusTooManyRequests},
		{"internal server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			if _, err := newTestClient(server).GetQuote(context.Background(), "AAPL"); err == nil {
				t.Error("expected error for HTTP failure status")
			}
		})
	}
}

func TestLoadConfig_DefaultBaseURL(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "key-from-env")
	t.Setenv("FINNHUB_BASE_URL", "")

	cfg := LoadConfig()

	if cfg.APIKey != "key-from-env" {
		t.Errorf("expected API key from env, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
}
