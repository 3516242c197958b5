package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_analysis_backend/internal/feature/prices/domain/entity"
	"stock_analysis_backend/internal/feature/prices/usecase"
)

// pricePostgres はPriceRepositoryインターフェースのPostgreSQL実装です。
type pricePostgres struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*pricePostgres)(nil)

// NewPriceRepository は指定されたDB接続でpricePostgresリポジトリの新しいインスタンスを生成します。
func NewPriceRepository(db *gorm.DB) *pricePostgres {
	return &pricePostgres{db: db}
}

// StockPriceModel は価格観測のORMモデルです。
// (stock_id, date) のユニーク複合インデックスが1銘柄1日1行の不変条件を保証します。
type StockPriceModel struct {
	ID      uint      `gorm:"primaryKey"`
	StockID uint      `gorm:"not null;uniqueIndex:price_stock_date,priority:1"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:price_stock_date,priority:2"`

	Open   float64 `gorm:"type:decimal(10,2);not null"`
	High   float64 `gorm:"type:decimal(10,2);not null"`
	Low    float64 `gorm:"type:decimal(10,2);not null"`
	Close  float64 `gorm:"type:decimal(10,2);not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (StockPriceModel) TableName() string {
	return "stock_prices"
}

// priceRow は stocks と結合した読み取り結果の受け皿です。
type priceRow struct {
	StockID uint
	Symbol  string
	Date    time.Time
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  int64
}

func toObservation(r priceRow) entity.PriceObservation {
	return entity.PriceObservation{
		StockID: r.StockID,
		Symbol:  r.Symbol,
		Date:    entity.DateOnly(r.Date),
		Open:    r.Open,
		High:    r.High,
		Low:     r.Low,
		Close:   r.Close,
		Volume:  r.Volume,
	}
}

const selectColumns = "stock_prices.stock_id, stocks.symbol, stock_prices.date, " +
	"stock_prices.open, stock_prices.high, stock_prices.low, stock_prices.close, stock_prices.volume"

// Upsert は (stock_id, date) をキーに観測行を原子的に挿入または更新します。
// 既存行がある場合はOHLCVの5フィールドをすべて上書きします。
func (r *pricePostgres) Upsert(ctx context.Context, p entity.PriceObservation) error {
	m := StockPriceModel{
		StockID: p.StockID,
		Date:    entity.DateOnly(p.Date),
		Open:    p.Open,
		High:    p.High,
		Low:     p.Low,
		Close:   p.Close,
		Volume:  p.Volume,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stock_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).Create(&m).Error
}

// Query は絞り込み・並べ替え・ページング付きで観測データと総件数を返します。
func (r *pricePostgres) Query(ctx context.Context, f usecase.Filter) ([]entity.PriceObservation, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&StockPriceModel{}).
		Joins("JOIN stocks ON stocks.id = stock_prices.stock_id")

	if f.Symbol != "" {
		q = q.Where("stocks.symbol = ?", f.Symbol)
	}
	if f.StartDate != nil {
		q = q.Where("stock_prices.date >= ?", entity.DateOnly(*f.StartDate))
	}
	if f.EndDate != nil {
		q = q.Where("stock_prices.date <= ?", entity.DateOnly(*f.EndDate))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, asc := f.SortColumn()
	direction := "DESC"
	if asc {
		direction = "ASC"
	}

	var rows []priceRow
	err := q.Select(selectColumns).
		Order("stock_prices." + column + " " + direction).
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]entity.PriceObservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, toObservation(row))
	}
	return out, total, nil
}

// LatestPerStock は銘柄ごとに最新日付の観測を1行ずつ返します。
// (stock_id, date) が一意なので MAX(date) による選択は決定的です。
func (r *pricePostgres) LatestPerStock(ctx context.Context) ([]entity.PriceObservation, error) {
	var rows []priceRow
	err := r.db.WithContext(ctx).
		Model(&StockPriceModel{}).
		Joins("JOIN stocks ON stocks.id = stock_prices.stock_id").
		Where("(stock_prices.stock_id, stock_prices.date) IN (?)",
			r.db.Model(&StockPriceModel{}).Select("stock_id, MAX(date)").Group("stock_id")).
		Select(selectColumns).
		Order("stocks.symbol ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.PriceObservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, toObservation(row))
	}
	return out, nil
}

// HistoryByStockID は指定銘柄の全観測を新しい順に返します。
func (r *pricePostgres) HistoryByStockID(ctx context.Context, stockID uint) ([]entity.PriceObservation, error) {
	var rows []priceRow
	err := r.db.WithContext(ctx).
		Model(&StockPriceModel{}).
		Joins("JOIN stocks ON stocks.id = stock_prices.stock_id").
		Where("stock_prices.stock_id = ?", stockID).
		Select(selectColumns).
		Order("stock_prices.date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.PriceObservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, toObservation(row))
	}
	return out, nil
}
