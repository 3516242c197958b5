// Package api はHTTPレスポンスの共有DTOを定義します。
// フィールド名は既存クライアントとの互換性のためAPI契約に固定されています。
package api

import "encoding/json"

// ErrorResponse は一般的なエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpstreamErrorResponse は外部プロバイダのエラーを生ペイロード付きで返します。
type UpstreamErrorResponse struct {
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// MessageResponse は確認メッセージのみのレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// StockPriceResponse は1件の価格観測のレスポンスDTOです。
type StockPriceResponse struct {
	Symbol     string  `json:"symbol,omitempty"`
	Date       string  `json:"date"`        // YYYY-MM-DD
	OpenPrice  float64 `json:"open_price"`  // 始値
	HighPrice  float64 `json:"high_price"`  // 高値
	LowPrice   float64 `json:"low_price"`   // 安値
	ClosePrice float64 `json:"close_price"` // 終値
	Volume     int64   `json:"volume"`      // 出来高
}

// PagedStocksResponse はページング付き観測一覧のレスポンスDTOです。
type PagedStocksResponse struct {
	TotalRecords int64                `json:"total_records"`
	TotalPages   int                  `json:"total_pages"`
	CurrentPage  int                  `json:"current_page"`
	PerPage      int                  `json:"per_page"`
	Stocks       []StockPriceResponse `json:"stocks"`
}

// CandleResponse は外部プロバイダ由来のローソク足1本のレスポンスDTOです。
type CandleResponse struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}
