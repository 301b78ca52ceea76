// Package storage defines the quote audit log shared by its backends.
package storage

import (
	"context"
	"time"
)

// QuoteRecord is one emitted gold quote.
type QuoteRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Base     float64 `gorm:"type:numeric;not null" json:"base"`
	Source   string  `gorm:"type:varchar(16);not null;index:idx_quote_source" json:"source"`
	Currency string  `gorm:"type:varchar(8);not null" json:"currency"`

	QuotedAt time.Time `gorm:"not null;index:idx_quote_quoted_at" json:"quotedAt"`

	RecordedAt time.Time `gorm:"autoCreateTime" json:"recordedAt"`
}

// TableName overrides the default table name for GORM.
func (QuoteRecord) TableName() string {
	return "quote_record"
}

// Store is an append-only quote log with retention.
type Store interface {
	InsertQuote(ctx context.Context, record *QuoteRecord) error
	RecentQuotes(ctx context.Context, limit int) ([]QuoteRecord, error)
	DeleteOldQuotes(ctx context.Context, before time.Time) (int64, error)
}
