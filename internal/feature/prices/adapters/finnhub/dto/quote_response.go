// Package dto defines data transfer objects for the Finnhub API responses.
package dto

// QuoteResponse はFinnhubの /quote エンドポイントのJSONレスポンスです。
// 無効なシンボルではフィールドが欠落するため、検出用にポインタで受けます。
type QuoteResponse struct {
	Current  *float64 `json:"c"`
	High     *float64 `json:"h"`
	Low      *float64 `json:"l"`
	Open     *float64 `json:"o"`
	PrevDay  *float64 `json:"pc"`
	Volume   *float64 `json:"v"`
	DayDelta *float64 `json:"d"`
}

// ProfileResponse はFinnhubの /stock/profile2 エンドポイントのJSONレスポンスです。
// 未知のシンボルでは name が欠落します。
type ProfileResponse struct {
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"finnhubIndustry"`
}

// CandleResponse はFinnhubの /stock/candle エンドポイントのJSONレスポンスです。
// OHLCVはタイムスタンプ配列と並行した配列で返されます。
type CandleResponse struct {
	Status     string    `json:"s"`
	Timestamps []int64   `json:"t"`
	Opens      []float64 `json:"o"`
	Highs      []float64 `json:"h"`
	Lows       []float64 `json:"l"`
	Closes     []float64 `json:"c"`
	Volumes    []int64   `json:"v"`
}
