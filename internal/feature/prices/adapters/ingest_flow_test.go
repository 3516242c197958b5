package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_analysis_backend/internal/feature/prices/domain/entity"
	"stock_analysis_backend/internal/feature/prices/usecase"
)

// stubMarket は固定のクオートとプロファイルを返すMarket実装です。
type stubMarket struct {
	quote   *entity.Quote
	profile *entity.CompanyProfile
}

func (s *stubMarket) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	return s.quote, nil
}

func (s *stubMarket) GetCompanyProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error) {
	return s.profile, nil
}

func (s *stubMarket) GetCandles(ctx context.Context, symbol, resolution string, from, to time.Time) ([]entity.Candle, error) {
	return nil, errors.New("not implemented")
}

// TestFetchAndStoreThenHistory は取り込んだ観測が実リポジトリ経由で
// 当日の履歴行として同一のOHLCVで読み出せることを検証します。
func TestFetchAndStoreThenHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	stockRepo := NewStockRepository(db)
	priceRepo := NewPriceRepository(db)
	market := &stubMarket{
		profile: &entity.CompanyProfile{Name: "Apple Inc", Sector: "Technology", Industry: "Consumer Electronics"},
		quote:   &entity.Quote{Open: 95, High: 110, Low: 90, Close: 100, Volume: 5000},
	}

	ingest := usecase.NewIngestUsecase(stockRepo, priceRepo, market)
	query := usecase.NewQueryUsecase(stockRepo, priceRepo)

	obs, err := ingest.FetchAndStore(ctx, "aapl")
	require.NoError(t, err)

	history, err := query.History(ctx, "aapl")
	require.NoError(t, err)
	require.Len(t, history, 1)

	got := history[0]
	today := entity.DateOnly(time.Now())
	assert.Equal(t, "AAPL", got.Symbol)
	assert.True(t, got.Date.Equal(today), "history date = %v, want %v", got.Date, today)
	assert.Equal(t, obs.Open, got.Open)
	assert.Equal(t, obs.High, got.High)
	assert.Equal(t, obs.Low, got.Low)
	assert.Equal(t, obs.Close, got.Close)
	assert.Equal(t, obs.Volume, got.Volume)

	// 同日の再取り込みは行を増やさず最新値で上書きする
	market.quote = &entity.Quote{Open: 96, High: 112, Low: 91, Close: 103, Volume: 7000}
	_, err = ingest.FetchAndStore(ctx, "AAPL")
	require.NoError(t, err)

	history, err = query.History(ctx, "AAPL")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 103.0, history[0].Close)
	assert.Equal(t, int64(7000), history[0].Volume)
}
