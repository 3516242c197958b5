// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"stock_analysis_backend/internal/feature/prices/domain/entity"
	"stock_analysis_backend/internal/feature/prices/usecase"
)

// stockPostgres はStockRepositoryインターフェースのPostgreSQL実装です。
type stockPostgres struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockPostgres)(nil)

// NewStockRepository は指定されたDB接続でstockPostgresリポジトリの新しいインスタンスを生成します。
func NewStockRepository(db *gorm.DB) *stockPostgres {
	return &stockPostgres{db: db}
}

// StockModel は銘柄マスタのORMモデルです。
type StockModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:10;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Sector    string    `gorm:"size:100"`
	Industry  string    `gorm:"size:100"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (StockModel) TableName() string {
	return "stocks"
}

func toStockEntity(m StockModel) *entity.Stock {
	return &entity.Stock{
		ID:       m.ID,
		Symbol:   m.Symbol,
		Name:     m.Name,
		Sector:   m.Sector,
		Industry: m.Industry,
	}
}

// FindBySymbol はシンボルで銘柄を検索します。存在しない場合は (nil, nil) を返します。
func (r *stockPostgres) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var m StockModel
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toStockEntity(m), nil
}

// Insert は新しい銘柄を登録し、採番されたIDをsに書き戻します。
func (r *stockPostgres) Insert(ctx context.Context, s *entity.Stock) error {
	m := StockModel{
		Symbol:   s.Symbol,
		Name:     s.Name,
		Sector:   s.Sector,
		Industry: s.Industry,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.ID = m.ID
	return nil
}
