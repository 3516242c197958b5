// Package usecase は株価の取り込み・照会のビジネスロジックを実装します。
package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrStockNotFound is returned when a symbol is unknown locally and the
	// upstream provider has no metadata for it.
	ErrStockNotFound = errors.New("stock not found")

	// ErrInvalidSymbol is returned when the upstream quote response lacks the
	// expected price fields (invalid symbol or provider error).
	ErrInvalidSymbol = errors.New("invalid stock symbol or API error")
)

// UpstreamError はローソク足プロバイダが非"ok"ステータスを返したことを表します。
// デバッグ用に生のレスポンスペイロードを保持します。
type UpstreamError struct {
	Status  string
	Payload json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %q", e.Status)
}
