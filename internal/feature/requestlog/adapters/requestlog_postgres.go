// Package adapters はrequestlogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stock_analysis_backend/internal/feature/requestlog/domain/entity"
)

// requestLogPostgres はリクエスト監査ログのPostgreSQL実装です。
type requestLogPostgres struct {
	db *gorm.DB
}

// NewRequestLogRepository は指定されたDB接続でrequestLogPostgresリポジトリの新しいインスタンスを生成します。
func NewRequestLogRepository(db *gorm.DB) *requestLogPostgres {
	return &requestLogPostgres{db: db}
}

// RequestLogModel はリクエスト監査ログのORMモデルです。追記専用で、更新・削除はされません。
type RequestLogModel struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         *uint  `gorm:"index"`
	Endpoint       string `gorm:"size:255;not null"`
	StatusCode     int    `gorm:"not null"`
	ResponseTimeMs int64  `gorm:"not null"`
	CreatedAt      time.Time
}

func (RequestLogModel) TableName() string {
	return "api_request_logs"
}

// Append は監査ログを1行追記します。タイムスタンプはストア側で付与されます。
func (r *requestLogPostgres) Append(ctx context.Context, l entity.RequestLog) error {
	m := RequestLogModel{
		UserID:         l.UserID,
		Endpoint:       l.Endpoint,
		StatusCode:     l.StatusCode,
		ResponseTimeMs: l.ResponseTimeMs,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}
