package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stock_analysis_backend/internal/feature/prices/adapters/finnhub/dto"
	"stock_analysis_backend/internal/feature/prices/domain/entity"
	"stock_analysis_backend/internal/feature/prices/usecase"
)

// Client はFinnhub外部APIから株価データを取得するMarket実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがMarketを実装していることをコンパイル時に検証します。
var _ usecase.Market = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// get はクエリパラメータにAPIキーを付与してGETリクエストを実行し、
// レスポンスボディをそのまま返します。リトライは行いません。
func (f *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	q.Set("token", f.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", f.cfg.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	return io.ReadAll(res.Body)
}

// GetQuote は当日のクオートを取得します。
// レスポンスに現在値（c）が無い場合は (nil, nil) を返します。
func (f *Client) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	b, err := f.get(ctx, "/quote", q)
	if err != nil {
		return nil, err
	}

	var body dto.QuoteResponse
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, err
	}
	if body.Current == nil {
		// 無効なシンボルまたはAPIエラー
		return nil, nil
	}

	quote := &entity.Quote{Close: *body.Current}
	if body.Open != nil {
		quote.Open = *body.Open
	}
	if body.High != nil {
		quote.High = *body.High
	}
	if body.Low != nil {
		quote.Low = *body.Low
	}
	if body.Volume != nil {
		quote.Volume = int64(*body.Volume)
	}
	return quote, nil
}

// GetCompanyProfile は銘柄メタデータを取得します。
// レスポンスに name が無い場合は (nil, nil) を返します。
func (f *Client) GetCompanyProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	b, err := f.get(ctx, "/stock/profile2", q)
	if err != nil {
		return nil, err
	}

	var body dto.ProfileResponse
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, err
	}
	if body.Name == "" {
		return nil, nil
	}

	return &entity.CompanyProfile{
		Name:     body.Name,
		Sector:   body.Sector,
		Industry: body.Industry,
	}, nil
}

// GetCandles は指定範囲のローソク足を取得します。
// ステータスが "ok" 以外の場合は生のペイロードを保持したUpstreamErrorを返します。
func (f *Client) GetCandles(ctx context.Context, symbol, resolution string, from, to time.Time) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("resolution", resolution)
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))

	b, err := f.get(ctx, "/stock/candle", q)
	if err != nil {
		return nil, err
	}

	var body dto.CandleResponse
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, err
	}
	if body.Status != "ok" {
		return nil, &usecase.UpstreamError{Status: body.Status, Payload: json.RawMessage(b)}
	}

	// 並行配列の長さが揃っていることを検証してからインデックスで束ねる
	n := len(body.Timestamps)
	switch {
	case n == 0:
		return nil, nil
	case len(body.Opens) != n, len(body.Highs) != n, len(body.Lows) != n,
		len(body.Closes) != n, len(body.Volumes) != n:
		return nil, fmt.Errorf("finnhub: mismatched candle arrays for %q", symbol)
	}

	candles := make([]entity.Candle, 0, n)
	for i, ts := range body.Timestamps {
		candles = append(candles, entity.Candle{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   body.Opens[i],
			High:   body.Highs[i],
			Low:    body.Lows[i],
			Close:  body.Closes[i],
			Volume: body.Volumes[i],
		})
	}
	return candles, nil
}
