// Package entity defines the domain models for the requestlog feature.
package entity

// RequestLog is one append-only audit record of an inbound HTTP call.
type RequestLog struct {
	// UserID is reserved for future authentication support and is
	// currently always nil.
	UserID         *uint
	Endpoint       string
	StatusCode     int
	ResponseTimeMs int64
}
