package price

import (
	"context"
	"time"

	"goldsite/pkg/storage"
)

// StoreRecorder appends quotes to a storage.Store.
type StoreRecorder struct {
	Store storage.Store
}

func (r StoreRecorder) RecordQuote(ctx context.Context, q Quote) error {
	return r.Store.InsertQuote(ctx, &storage.QuoteRecord{
		Base:     q.Base(),
		Source:   string(q.Source),
		Currency: q.Currency,
		QuotedAt: time.UnixMilli(q.Timestamp).UTC(),
	})
}
