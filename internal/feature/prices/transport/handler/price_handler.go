// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analysis_backend/internal/api"
	"stock_analysis_backend/internal/feature/prices/domain/entity"
	"stock_analysis_backend/internal/feature/prices/usecase"
)

const dateLayout = "2006-01-02"

// IngestUsecase は株価取り込みのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type IngestUsecase interface {
	FetchAndStore(ctx context.Context, symbol string) (entity.PriceObservation, error)
}

// QueryUsecase は保存済み観測データ照会のユースケースインターフェースを定義します。
type QueryUsecase interface {
	List(ctx context.Context, f usecase.Filter) (usecase.Page, error)
	Latest(ctx context.Context) ([]entity.PriceObservation, error)
	History(ctx context.Context, symbol string) ([]entity.PriceObservation, error)
}

// CandlesUsecase は外部ヒストリカルデータ取得のユースケースインターフェースを定義します。
type CandlesUsecase interface {
	GetCandles(ctx context.Context, symbol, resolution string, from, to *time.Time) ([]entity.Candle, error)
	GetAlternateHistory(ctx context.Context, symbol, period, interval string) ([]entity.Candle, error)
}

// CacheClearer はクオートキャッシュの全消去を抽象化します。
type CacheClearer interface {
	Clear()
}

// PriceHandler は株価関連のHTTPリクエストを処理します。
type PriceHandler struct {
	ingest  IngestUsecase
	query   QueryUsecase
	candles CandlesUsecase
	cache   CacheClearer
}

// NewPriceHandler は指定されたusecase群でPriceHandlerの新しいインスタンスを生成します。
func NewPriceHandler(ingest IngestUsecase, query QueryUsecase, candles CandlesUsecase, cache CacheClearer) *PriceHandler {
	return &PriceHandler{ingest: ingest, query: query, candles: candles, cache: cache}
}

func toPriceResponse(o entity.PriceObservation, withSymbol bool) api.StockPriceResponse {
	res := api.StockPriceResponse{
		Date:       o.Date.Format(dateLayout),
		OpenPrice:  o.Open,
		HighPrice:  o.High,
		LowPrice:   o.Low,
		ClosePrice: o.Close,
		Volume:     o.Volume,
	}
	if withSymbol {
		res.Symbol = o.Symbol
	}
	return res
}

func toCandleResponses(candles []entity.Candle) []api.CandleResponse {
	out := make([]api.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, api.CandleResponse{
			Date:   x.Time.UTC().Format(dateLayout),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}
	return out
}

// GetStock はクオートを取得・保存して正規化結果を返すAPIです。
//
// エンドポイント例:
// GET /stock/:symbol
func (h *PriceHandler) GetStock(c *gin.Context) {
	obs, err := h.ingest.FetchAndStore(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStockNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Stock not found"})
		case errors.Is(err, usecase.ErrInvalidSymbol):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid stock symbol or API error"})
		default:
			slog.Error("fetch and store failed", "symbol", c.Param("symbol"), "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, toPriceResponse(obs, true))
}

// ListStocks は絞り込み・並べ替え・ページング付きの観測一覧APIです。
//
// エンドポイント例:
// GET /stocks?symbol=AAPL&start_date=2025-01-01&sort_by=volume&order=asc&page=1&per_page=10
func (h *PriceHandler) ListStocks(c *gin.Context) {
	f := usecase.Filter{
		Symbol: c.Query("symbol"),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}
	// 未指定の場合はデフォルト値を使用
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))

	var ok bool
	if f.StartDate, ok = parseDateQuery(c, "start_date"); !ok {
		return
	}
	if f.EndDate, ok = parseDateQuery(c, "end_date"); !ok {
		return
	}

	page, err := h.query.List(c.Request.Context(), f)
	if err != nil {
		slog.Error("list stocks failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	out := api.PagedStocksResponse{
		TotalRecords: page.TotalRecords,
		TotalPages:   page.TotalPages,
		CurrentPage:  page.CurrentPage,
		PerPage:      page.PerPage,
		Stocks:       make([]api.StockPriceResponse, 0, len(page.Items)),
	}
	for _, o := range page.Items {
		out.Stocks = append(out.Stocks, toPriceResponse(o, true))
	}
	c.JSON(http.StatusOK, out)
}

// LatestStocks は登録済み全銘柄の最新観測を返すAPIです。
//
// エンドポイント例:
// GET /stocks/latest
func (h *PriceHandler) LatestStocks(c *gin.Context) {
	items, err := h.query.Latest(c.Request.Context())
	if err != nil {
		slog.Error("latest stocks failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]api.StockPriceResponse, 0, len(items))
	for _, o := range items {
		out = append(out, toPriceResponse(o, true))
	}
	c.JSON(http.StatusOK, out)
}

// StockHistory は指定銘柄の保存済み履歴を新しい順に返すAPIです。
//
// エンドポイント例:
// GET /stocks/history/:symbol
func (h *PriceHandler) StockHistory(c *gin.Context) {
	items, err := h.query.History(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, usecase.ErrStockNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Stock not found"})
			return
		}
		slog.Error("stock history failed", "symbol", c.Param("symbol"), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]api.StockPriceResponse, 0, len(items))
	for _, o := range items {
		out = append(out, toPriceResponse(o, false))
	}
	c.JSON(http.StatusOK, out)
}

// FinnhubHistory はFinnhubのローソク足を日付範囲指定で取得するAPIです。
// プロバイダが非"ok"ステータスを返した場合は502と生ペイロードを返します。
//
// エンドポイント例:
// GET /stocks/finnhub/history/:symbol?resolution=D&start_date=2025-01-01&end_date=2025-01-31
func (h *PriceHandler) FinnhubHistory(c *gin.Context) {
	var (
		from, to *time.Time
		ok       bool
	)
	if from, ok = parseDateQuery(c, "start_date"); !ok {
		return
	}
	if to, ok = parseDateQuery(c, "end_date"); !ok {
		return
	}

	candles, err := h.candles.GetCandles(c.Request.Context(),
		c.Param("symbol"), c.Query("resolution"), from, to)
	if err != nil {
		var ue *usecase.UpstreamError
		if errors.As(err, &ue) {
			c.JSON(http.StatusBadGateway, api.UpstreamErrorResponse{
				Error: "Error fetching data from Finnhub",
				Data:  ue.Payload,
			})
			return
		}
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toCandleResponses(candles))
}

// YFinanceHistory は代替ソースのローソク足を period/interval 指定で取得するAPIです。
//
// エンドポイント例:
// GET /stocks/yfinance/history/:symbol?period=1mo&interval=1d
func (h *PriceHandler) YFinanceHistory(c *gin.Context) {
	candles, err := h.candles.GetAlternateHistory(c.Request.Context(),
		c.Param("symbol"), c.Query("period"), c.Query("interval"))
	if err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toCandleResponses(candles))
}

// ClearCache はクオートキャッシュを無条件に全消去するAPIです。
//
// エンドポイント例:
// POST /clear_cache
func (h *PriceHandler) ClearCache(c *gin.Context) {
	h.cache.Clear()
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Cache cleared successfully"})
}

// parseDateQuery はYYYY-MM-DD形式のクエリパラメータを解析します。
// 不正な形式の場合は400を返してfalseを返します。未指定はnilです。
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid " + name + ": expected YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}
