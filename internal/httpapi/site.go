package httpapi

import (
	"net/http"
	"strconv"

	"goldsite/internal/search"
	"goldsite/internal/site"

	"go.uber.org/zap"
)

type searchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

func (a *API) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := []search.Result{}
	if a.deps.Search != nil {
		results = a.deps.Search.Search(q)
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: results})
}

func (a *API) site(w http.ResponseWriter, r *http.Request) {
	width := 0
	if raw := r.URL.Query().Get("width"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "width must be an integer")
			return
		}
		width = n
	}
	writeJSON(w, http.StatusOK, site.ChromeFor(width))
}

func (a *API) sitemap(w http.ResponseWriter, _ *http.Request) {
	body, err := site.Sitemap(a.deps.SiteURL)
	if err != nil {
		a.logger.Error("failed to render sitemap", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render sitemap")
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

func (a *API) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(site.Robots(a.deps.SiteURL)))
}
