package price

import (
	"context"
	"testing"
	"time"

	"goldsite/pkg/storage/memory"
)

// go test -v --run TestStoreRecorder
func TestStoreRecorder(t *testing.T) {
	store := memory.NewMemoryStore(0)
	rec := StoreRecorder{Store: store}

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	q := Derive(4240, at)
	q.Source = SourceSimulated

	if err := rec.RecordQuote(context.Background(), q); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, _ := store.RecentQuotes(context.Background(), 1)
	if len(got) != 1 {
		t.Fatalf("expected one record, got %d", len(got))
	}
	r := got[0]
	if r.Base != 4240 || r.Source != "simulated" || r.Currency != "USD" || !r.QuotedAt.Equal(at) {
		t.Errorf("unexpected record: %+v", r)
	}
}
