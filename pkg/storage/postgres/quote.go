package postgres

import (
	"context"
	"fmt"
	"time"

	"goldsite/pkg/storage"
)

func (p *PostgresClient) InsertQuote(ctx context.Context, record *storage.QuoteRecord) error {
	if err := p.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// RecentQuotes returns up to limit records, newest first.
func (p *PostgresClient) RecentQuotes(ctx context.Context, limit int) ([]storage.QuoteRecord, error) {
	var records []storage.QuoteRecord
	err := p.DB.WithContext(ctx).
		Order("quoted_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query recent quotes: %w", err)
	}
	return records, nil
}

// DeleteOldQuotes removes records quoted before the cutoff and reports how many.
func (p *PostgresClient) DeleteOldQuotes(ctx context.Context, before time.Time) (int64, error) {
	tx := p.DB.WithContext(ctx).
		Where("quoted_at < ?", before).
		Delete(&storage.QuoteRecord{})
	if tx.Error != nil {
		return 0, fmt.Errorf("delete old quotes: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}
