// Package cache provides caching decorators for upstream market access.
package cache

import (
	"context"
	"sync"
	"time"

	"stock_analysis_backend/internal/feature/prices/domain/entity"
	"stock_analysis_backend/internal/feature/prices/usecase"
)

// DefaultQuoteTTL はクオートのキャッシュ保持期間です。
const DefaultQuoteTTL = 300 * time.Second

// quoteEntry は1シンボル分のキャッシュ済みクオートです。
type quoteEntry struct {
	expiresAt time.Time
	quote     *entity.Quote
}

// CachingMarket はMarketをデコレートし、GetQuoteの結果をシンボル単位で
// プロセス内にTTL付きでメモ化します。プロファイルとローソク足は素通しです。
//
// キャッシュはプロセスローカルであり、再起動で消えます。複数プロセス構成では
// プロセスごとに独立したキャッシュを持ちます（共有の無効化機構は持ちません）。
type CachingMarket struct {
	inner usecase.Market
	ttl   time.Duration
	now   func() time.Time

	mu    sync.RWMutex
	items map[string]quoteEntry
}

var _ usecase.Market = (*CachingMarket)(nil)

// NewCachingMarket はMarketをクオートキャッシュでデコレートします。
// ttl が0以下の場合は300秒にフォールバックします。
func NewCachingMarket(inner usecase.Market, ttl time.Duration) *CachingMarket {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return &CachingMarket{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]quoteEntry),
	}
}

// GetQuote はTTL内であればキャッシュ済みクオートを返し、
// ミスまたは期限切れの場合のみ内部のMarketを呼び出します。
func (c *CachingMarket) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.items[symbol]
	c.mu.RUnlock()
	if ok && now.Before(e.expiresAt) {
		return e.quote, nil
	}

	quote, err := c.inner.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	// 取得失敗のnilはキャッシュしない（次回呼び出しで再試行させる）
	if quote == nil {
		return nil, nil
	}

	c.mu.Lock()
	c.items[symbol] = quoteEntry{expiresAt: now.Add(c.ttl), quote: quote}
	c.mu.Unlock()

	return quote, nil
}

// GetCompanyProfile は内部のMarketをそのまま呼び出します。
func (c *CachingMarket) GetCompanyProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error) {
	return c.inner.GetCompanyProfile(ctx, symbol)
}

// GetCandles は内部のMarketをそのまま呼び出します。
func (c *CachingMarket) GetCandles(ctx context.Context, symbol, resolution string, from, to time.Time) ([]entity.Candle, error) {
	return c.inner.GetCandles(ctx, symbol, resolution, from, to)
}

// Clear はキーや経過時間にかかわらず全エントリを無条件に破棄します。
func (c *CachingMarket) Clear() {
	c.mu.Lock()
	c.items = make(map[string]quoteEntry)
	c.mu.Unlock()
}
