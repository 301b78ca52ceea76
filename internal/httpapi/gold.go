package httpapi

import (
	"net/http"
	"strconv"

	"goldsite/pkg/storage"

	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 500
)

// gold answers GET /api/gold. The fetcher never fails, so neither does this.
func (a *API) gold(w http.ResponseWriter, r *http.Request) {
	q := a.deps.Fetcher.Fetch(r.Context())
	noCache(w)
	writeJSON(w, http.StatusOK, q)
}

func (a *API) goldHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records := []storage.QuoteRecord{}
	if a.deps.History != nil {
		got, err := a.deps.History.RecentQuotes(r.Context(), limit)
		if err != nil {
			a.logger.Error("failed to read quote history", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to read history")
			return
		}
		if got != nil {
			records = got
		}
	}

	noCache(w)
	writeJSON(w, http.StatusOK, records)
}
