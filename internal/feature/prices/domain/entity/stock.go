// Package entity defines the domain models for the prices feature.
package entity

// Stock represents one tracked security. Rows are created lazily the first
// time an unknown symbol is requested and its metadata is resolved upstream.
type Stock struct {
	ID       uint
	Symbol   string // Uppercase ticker symbol (e.g. "AAPL")
	Name     string
	Sector   string
	Industry string
}

// CompanyProfile is the upstream metadata used to create a Stock.
type CompanyProfile struct {
	Name     string
	Sector   string
	Industry string
}
