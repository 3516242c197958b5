package entity

import "time"

// Quote は銘柄の当日OHLCVスナップショットです。
type Quote struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceObservation は1銘柄・1暦日あたり1行の価格記録です。
// (StockID, Date) の組は一意であることが不変条件です。
type PriceObservation struct {
	StockID uint
	Symbol  string    // 結合済みのティッカーシンボル（読み取り時に設定）
	Date    time.Time // UTCの0時に正規化された暦日
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  int64
}

// Candle は外部プロバイダから取得した1本のローソク足です。
// 永続化はされず、ヒストリカルAPIのパススルーにのみ使われます。
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// DateOnly は t をUTCの暦日（0時）に正規化します。
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
