package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"stock_analysis_backend/internal/app/di"
	"stock_analysis_backend/internal/app/router"
	pricesadapters "stock_analysis_backend/internal/feature/prices/adapters"
	priceshandler "stock_analysis_backend/internal/feature/prices/transport/handler"
	pricesusecase "stock_analysis_backend/internal/feature/prices/usecase"
	requestlogadapters "stock_analysis_backend/internal/feature/requestlog/adapters"
	"stock_analysis_backend/internal/platform/cache"
	infradb "stock_analysis_backend/internal/platform/db"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Repository
	stockRepo := pricesadapters.NewStockRepository(db)
	priceRepo := pricesadapters.NewPriceRepository(db)
	logRepo := requestlogadapters.NewRequestLogRepository(db)

	// 外部API（クオートはプロセス内キャッシュでラップ）
	market := cache.NewCachingMarket(di.NewMarket(), cache.DefaultQuoteTTL)
	alt := di.NewAltHistory()

	// Usecase
	ingestUC := pricesusecase.NewIngestUsecase(stockRepo, priceRepo, market)
	queryUC := pricesusecase.NewQueryUsecase(stockRepo, priceRepo)
	candlesUC := pricesusecase.NewCandlesUsecase(market, alt)

	// Handler
	pricesH := priceshandler.NewPriceHandler(ingestUC, queryUC, candlesUC, market)

	// ルータ生成（CORS含む）
	router := router.NewRouter(pricesH, logRepo)

	// APIキーチェック（開発中の注意喚起）
	if os.Getenv("FINNHUB_API_KEY") == "" {
		log.Println("[WARN] FINNHUB_API_KEY is not set. Upstream quote calls will fail.")
	}

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	if err := router.Run(addr); err != nil {
		log.Fatal(err)
	}
}
