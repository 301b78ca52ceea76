// Package memory keeps the quote log in process when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"goldsite/pkg/storage"
)

// MemoryStore holds at most maxRecords quotes; older ones are dropped first.
type MemoryStore struct {
	mu         sync.Mutex
	nextID     uint
	records    []storage.QuoteRecord
	maxRecords int
}

var _ storage.Store = (*MemoryStore)(nil)

func NewMemoryStore(maxRecords int) *MemoryStore {
	return &MemoryStore{
		records:    make([]storage.QuoteRecord, 0),
		maxRecords: maxRecords,
	}
}

func (m *MemoryStore) InsertQuote(_ context.Context, r *storage.QuoteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	r.ID = m.nextID
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	m.records = append(m.records, *r)

	if m.maxRecords > 0 && len(m.records) > m.maxRecords {
		m.records = append(m.records[:0:0], m.records[len(m.records)-m.maxRecords:]...)
	}
	return nil
}

// RecentQuotes returns up to limit records, newest first.
func (m *MemoryStore) RecentQuotes(_ context.Context, limit int) ([]storage.QuoteRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]storage.QuoteRecord, len(m.records))
	copy(out, m.records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].QuotedAt.Equal(out[j].QuotedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].QuotedAt.After(out[j].QuotedAt)
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) DeleteOldQuotes(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	var n int64
	for _, r := range m.records {
		if r.QuotedAt.Before(before) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return n, nil
}
