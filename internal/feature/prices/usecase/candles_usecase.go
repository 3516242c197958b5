package usecase

import (
	"context"
	"strings"
	"time"

	"stock_analysis_backend/internal/feature/prices/domain/entity"
)

const (
	// DefaultResolution はローソク足取得の既定の足種です（日足）。
	DefaultResolution = "D"
	// DefaultCandleRange は開始日省略時に遡る日数です。
	DefaultCandleRange = 30 * 24 * time.Hour
	// DefaultPeriod は代替ヒストリカルソースの既定期間です。
	DefaultPeriod = "1mo"
	// DefaultHistoryInterval は代替ヒストリカルソースの既定の足種です。
	DefaultHistoryInterval = "1d"
)

// AltHistory は period/interval 語彙で照会する第2のヒストリカルデータソースです。
type AltHistory interface {
	GetHistory(ctx context.Context, symbol, period, interval string) ([]entity.Candle, error)
}

// CandlesUsecase は外部プロバイダのヒストリカルデータをパススルーで提供します。
// 取得結果は永続化しません。
type CandlesUsecase struct {
	market Market
	alt    AltHistory
}

// NewCandlesUsecase は新しい CandlesUsecase を作成します。
func NewCandlesUsecase(market Market, alt AltHistory) *CandlesUsecase {
	return &CandlesUsecase{market: market, alt: alt}
}

// GetCandles は日付範囲指定でローソク足を取得します。
// to 省略時は当日、from 省略時は to の30日前を使います。
func (cu *CandlesUsecase) GetCandles(ctx context.Context, symbol, resolution string, from, to *time.Time) ([]entity.Candle, error) {
	if resolution == "" {
		resolution = DefaultResolution
	}

	end := entity.DateOnly(time.Now())
	if to != nil {
		end = entity.DateOnly(*to)
	}
	start := end.Add(-DefaultCandleRange)
	if from != nil {
		start = entity.DateOnly(*from)
	}

	return cu.market.GetCandles(ctx, strings.ToUpper(symbol), resolution, start, end)
}

// GetAlternateHistory は period/interval 指定でローソク足を取得します。
func (cu *CandlesUsecase) GetAlternateHistory(ctx context.Context, symbol, period, interval string) ([]entity.Candle, error) {
	if period == "" {
		period = DefaultPeriod
	}
	if interval == "" {
		interval = DefaultHistoryInterval
	}
	return cu.alt.GetHistory(ctx, strings.ToUpper(symbol), period, interval)
}
