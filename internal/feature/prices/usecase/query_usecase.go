package usecase

import (
	"context"
	"strings"
	"time"

	"stock_analysis_backend/internal/feature/prices/domain/entity"
)

const (
	// DefaultPage はページ番号の既定値です（1始まり）。
	DefaultPage = 1
	// DefaultPerPage は1ページあたりの既定件数です。
	DefaultPerPage = 10
	// MaxPerPage は1ページあたりの最大件数です。
	MaxPerPage = 100
)

// sortColumns は並べ替えに使用できる列のホワイトリストです。
// これ以外の値が指定された場合は日付の降順にフォールバックします。
var sortColumns = map[string]string{
	"date":        "date",
	"open_price":  "open",
	"close_price": "close",
	"volume":      "volume",
}

// Filter は観測データ照会の絞り込み・並べ替え・ページング条件です。
// フィルタはすべてAND条件で適用されます。
type Filter struct {
	Symbol    string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	Order     string
	Page      int
	PerPage   int
}

// SortColumn は検証済みの並べ替え列と昇順フラグを返します。
func (f Filter) SortColumn() (column string, asc bool) {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		return "date", false
	}
	return col, f.Order == "asc"
}

// Page は1ページ分の照会結果です。
type Page struct {
	TotalRecords int64
	TotalPages   int
	CurrentPage  int
	PerPage      int
	Items        []entity.PriceObservation
}

// QueryUsecase は保存済み観測データの照会ユースケースです。読み取り専用です。
type QueryUsecase struct {
	stock StockRepository
	price PriceRepository
}

// NewQueryUsecase は新しい QueryUsecase を作成します。
func NewQueryUsecase(stock StockRepository, price PriceRepository) *QueryUsecase {
	return &QueryUsecase{stock: stock, price: price}
}

// List は絞り込み・並べ替え・ページング付きの観測データ一覧を返します。
// 範囲外のページはエラーにせず、正確な件数と空のItemsを返します。
func (qu *QueryUsecase) List(ctx context.Context, f Filter) (Page, error) {
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.PerPage <= 0 || f.PerPage > MaxPerPage {
		f.PerPage = DefaultPerPage
	}
	f.Symbol = strings.ToUpper(f.Symbol)

	items, total, err := qu.price.Query(ctx, f)
	if err != nil {
		return Page{}, err
	}

	totalPages := int((total + int64(f.PerPage) - 1) / int64(f.PerPage))
	return Page{
		TotalRecords: total,
		TotalPages:   totalPages,
		CurrentPage:  f.Page,
		PerPage:      f.PerPage,
		Items:        items,
	}, nil
}

// Latest は登録済みの全銘柄について、それぞれ最新日付の観測を1行ずつ返します。
func (qu *QueryUsecase) Latest(ctx context.Context) ([]entity.PriceObservation, error) {
	return qu.price.LatestPerStock(ctx)
}

// History は指定銘柄の全観測履歴を新しい順に返します。
// 未登録の銘柄は ErrStockNotFound になります（ここでは外部解決しません）。
func (qu *QueryUsecase) History(ctx context.Context, symbol string) ([]entity.PriceObservation, error) {
	stock, err := qu.stock.FindBySymbol(ctx, strings.ToUpper(symbol))
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, ErrStockNotFound
	}
	return qu.price.HistoryByStockID(ctx, stock.ID)
}
