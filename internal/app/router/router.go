package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	priceshandler "stock_analysis_backend/internal/feature/prices/transport/handler"
	requestlogmw "stock_analysis_backend/internal/feature/requestlog/middleware"
	platformhandler "stock_analysis_backend/internal/platform/http/handler"
)

// NewRouter はルートテーブルを構築したginエンジンを返します。
// 全エンドポイント（エラーレスポンス含む）がリクエスト監査ログの対象です。
func NewRouter(prices *priceshandler.PriceHandler, logRepo requestlogmw.LogRepository) *gin.Engine {
	r := gin.Default()

	// CORSはルート登録前に適用する（登録後のUseは既存ルートのチェーンに入らない）
	r.Use(cors.Default())

	// 導通確認用（監査ログ対象外）
	r.GET("/healthz", platformhandler.Health)

	// リクエスト監査ログ
	logged := r.Group("/")
	logged.Use(requestlogmw.RequestLogger(logRepo))
	{
		// クオート取得・保存（Stock/StockPrice行を作る唯一の書き込み経路）
		logged.GET("/stock/:symbol", prices.GetStock)
		// 保存済み観測の照会
		logged.GET("/stocks", prices.ListStocks)
		logged.GET("/stocks/latest", prices.LatestStocks)
		logged.GET("/stocks/history/:symbol", prices.StockHistory)
		// 外部プロバイダのヒストリカルデータ（パススルー）
		logged.GET("/stocks/finnhub/history/:symbol", prices.FinnhubHistory)
		logged.GET("/stocks/yfinance/history/:symbol", prices.YFinanceHistory)
		// クオートキャッシュの全消去
		logged.POST("/clear_cache", prices.ClearCache)
	}

	return r
}
