package postgres_test

import (
	"context"
	"testing"
	"time"

	"goldsite/pkg/storage"
)

// go test -v --run TestQuoteLog
func TestQuoteLog(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour).UTC()
	now := time.Now().UTC()

	for _, r := range []*storage.QuoteRecord{
		{Base: 4230.5, Source: "upstream", Currency: "USD", QuotedAt: old},
		{Base: 4232.1, Source: "simulated", Currency: "USD", QuotedAt: now},
	} {
		if err := client.InsertQuote(ctx, r); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		if r.ID == 0 {
			t.Fatal("expected id to be assigned")
		}
	}

	recent, err := client.RecentQuotes(ctx, 1)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 1 || recent[0].Base != 4232.1 {
		t.Errorf("expected newest quote first, got %+v", recent)
	}

	n, err := client.DeleteOldQuotes(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if n < 1 {
		t.Errorf("expected the old quote deleted, got %d", n)
	}

	if _, err := client.DeleteOldQuotes(ctx, now.Add(time.Hour)); err != nil {
		t.Errorf("cleanup failed: %v", err)
	}
}
