// Package middleware はリクエスト監査ログを記録するginミドルウェアを提供します。
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analysis_backend/internal/feature/requestlog/domain/entity"
)

// LogRepository はリクエスト監査ログの追記を抽象化します。
// Goの慣例に従い、インターフェースは利用者（middleware）側で定義します。
type LogRepository interface {
	Append(ctx context.Context, l entity.RequestLog) error
}

// RequestLogger は全インバウンド呼び出しについて、エンドポイント・確定した
// ステータスコード・ミリ秒単位のレイテンシを1リクエストにつき1行記録する
// ginミドルウェアを返します。エラーレスポンスも対象です。
// ログの追記失敗はレスポンスには影響させず、警告ログのみ出力します。
func RequestLogger(repo LogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := entity.RequestLog{
			Endpoint:       c.Request.URL.Path,
			StatusCode:     c.Writer.Status(),
			ResponseTimeMs: time.Since(start).Milliseconds(),
		}
		if err := repo.Append(c.Request.Context(), entry); err != nil {
			slog.Warn("failed to append request log",
				"endpoint", entry.Endpoint, "status", entry.StatusCode, "error", err)
		}
	}
}
