// Package finnhub provides a client for the Finnhub stock market API.
package finnhub

import (
	"os"
	"time"
)

// DefaultBaseURL is the production Finnhub API endpoint.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey  string        // API key for authentication (token query parameter)
	BaseURL string        // Base URL for the API
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Finnhub configuration from environment variables.
func LoadConfig() Config {
	baseURL := os.Getenv("FINNHUB_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("FINNHUB_API_KEY"),
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}
