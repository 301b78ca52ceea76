package memory

import (
	"context"
	"testing"
	"time"

	"goldsite/pkg/storage"
)

// go test -v --run TestInsertAndRecent
func TestInsertAndRecent(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 3; i++ {
		r := &storage.QuoteRecord{Base: float64(4230 + i), Source: "upstream", Currency: "USD", QuotedAt: base.Add(time.Duration(i) * time.Second)}
		if err := store.InsertQuote(ctx, r); err != nil {
			t.Fatal(err)
		}
		if r.ID != uint(i+1) {
			t.Errorf("expected id %d, got %d", i+1, r.ID)
		}
	}

	got, _ := store.RecentQuotes(ctx, 2)
	if len(got) != 2 || got[0].Base != 4232 || got[1].Base != 4231 {
		t.Errorf("expected newest first, got %+v", got)
	}
}

// go test -v --run TestMaxRecords
func TestMaxRecords(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		store.InsertQuote(ctx, &storage.QuoteRecord{Base: float64(i), QuotedAt: time.Now()})
	}

	got, _ := store.RecentQuotes(ctx, 10)
	if len(got) != 2 || got[0].Base != 4 || got[1].Base != 3 {
		t.Errorf("expected the two newest kept, got %+v", got)
	}
}

// go test -v --run TestDeleteOldQuotes
func TestDeleteOldQuotes(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()
	now := time.Now()

	store.InsertQuote(ctx, &storage.QuoteRecord{Base: 1, QuotedAt: now.Add(-48 * time.Hour)})
	store.InsertQuote(ctx, &storage.QuoteRecord{Base: 2, QuotedAt: now})

	n, err := store.DeleteOldQuotes(ctx, now.Add(-time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("expected 1 deletion, got %d (%v)", n, err)
	}

	got, _ := store.RecentQuotes(ctx, 10)
	if len(got) != 1 || got[0].Base != 2 {
		t.Errorf("unexpected remaining records: %+v", got)
	}
}
