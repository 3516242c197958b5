// Package yahoo provides a client for the Yahoo Finance chart API,
// used as the secondary historical-data source.
package yahoo

import "os"

// DefaultBaseURL is the public Yahoo Finance chart API endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Config holds configuration for the Yahoo Finance chart client.
type Config struct {
	BaseURL string // Base URL for the API
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() Config {
	baseURL := os.Getenv("YAHOO_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Config{BaseURL: baseURL}
}
