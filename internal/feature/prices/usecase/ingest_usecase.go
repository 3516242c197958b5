package usecase

import (
	"context"
	"strings"
	"time"

	"stock_analysis_backend/internal/feature/prices/domain/entity"
)

// StockRepository は銘柄マスタの永続化を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StockRepository interface {
	// FindBySymbol は銘柄を検索します。存在しない場合は (nil, nil) を返します。
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)
	// Insert は新しい銘柄を登録し、採番されたIDをsに書き戻します。
	Insert(ctx context.Context, s *entity.Stock) error
}

// PriceRepository は価格観測データの永続化を抽象化します。
type PriceRepository interface {
	// (stock_id, date) をユニークキーとしてUpsert
	Upsert(ctx context.Context, p entity.PriceObservation) error
	Query(ctx context.Context, f Filter) ([]entity.PriceObservation, int64, error)
	LatestPerStock(ctx context.Context) ([]entity.PriceObservation, error)
	HistoryByStockID(ctx context.Context, stockID uint) ([]entity.PriceObservation, error)
}

// Market は外部プロバイダからの株価取得を抽象化します。
// クオートとプロファイルは、期待するフィールドを欠くレスポンスを
// エラーではなく nil で通知します（フィールド欠落が失敗のシグナル）。
type Market interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	GetCompanyProfile(ctx context.Context, symbol string) (*entity.CompanyProfile, error)
	GetCandles(ctx context.Context, symbol, resolution string, from, to time.Time) ([]entity.Candle, error)
}

// IngestUsecase は「銘柄解決 → クオート取得 → 当日行のUpsert」を編成します。
// Stock と PriceObservation をライブデータから作成する唯一の書き込み経路です。
type IngestUsecase struct {
	stock  StockRepository
	price  PriceRepository
	market Market
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
// market にはキャッシュ済みデコレータを渡すことを想定しています。
func NewIngestUsecase(stock StockRepository, price PriceRepository, market Market) *IngestUsecase {
	return &IngestUsecase{stock: stock, price: price, market: market}
}

// resolveStock は銘柄を検索し、未登録なら外部プロバイダのメタデータで作成します。
// 外部にも存在しない場合は ErrStockNotFound を返します。
func (iu *IngestUsecase) resolveStock(ctx context.Context, symbol string) (*entity.Stock, error) {
	stock, err := iu.stock.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if stock != nil {
		return stock, nil
	}

	profile, err := iu.market.GetCompanyProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrStockNotFound
	}

	stock = &entity.Stock{
		Symbol:   symbol,
		Name:     profile.Name,
		Sector:   profile.Sector,
		Industry: profile.Industry,
	}
	if err := iu.stock.Insert(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// FetchAndStore はクオートを取得して当日の観測行をUpsertし、正規化した結果を返します。
// 未知の銘柄は ErrStockNotFound、クオートが取れない銘柄は ErrInvalidSymbol になります。
func (iu *IngestUsecase) FetchAndStore(ctx context.Context, symbol string) (entity.PriceObservation, error) {
	symbol = strings.ToUpper(symbol)

	stock, err := iu.resolveStock(ctx, symbol)
	if err != nil {
		return entity.PriceObservation{}, err
	}

	quote, err := iu.market.GetQuote(ctx, symbol)
	if err != nil {
		return entity.PriceObservation{}, err
	}
	if quote == nil {
		return entity.PriceObservation{}, ErrInvalidSymbol
	}

	obs := entity.PriceObservation{
		StockID: stock.ID,
		Symbol:  stock.Symbol,
		Date:    entity.DateOnly(time.Now()),
		Open:    quote.Open,
		High:    quote.High,
		Low:     quote.Low,
		Close:   quote.Close,
		Volume:  quote.Volume,
	}
	if err := iu.price.Upsert(ctx, obs); err != nil {
		return entity.PriceObservation{}, err
	}
	return obs, nil
}
