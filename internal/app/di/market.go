// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"stock_analysis_backend/internal/feature/prices/adapters/finnhub"
	"stock_analysis_backend/internal/feature/prices/adapters/yahoo"
	infrahttp "stock_analysis_backend/internal/platform/http"
)

// NewMarket creates a fully configured Finnhub client with HTTP client.
func NewMarket() *finnhub.Client {
	cfg := finnhub.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return finnhub.NewClient(cfg, httpClient)
}

// NewAltHistory creates the secondary historical-data client (Yahoo Finance).
func NewAltHistory() *yahoo.Client {
	return yahoo.NewClient(yahoo.LoadConfig(), infrahttp.NewHTTPClient(30*time.Second))
}
