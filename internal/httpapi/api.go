// Package httpapi exposes the site's JSON endpoints.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"goldsite/internal/forms"
	"goldsite/internal/metrics"
	"goldsite/internal/price"
	"goldsite/internal/search"
	"goldsite/pkg/storage"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// QuoteFetcher is satisfied by *price.Fetcher.
type QuoteFetcher interface {
	Fetch(ctx context.Context) price.Quote
}

// QuoteHistory is satisfied by the storage backends.
type QuoteHistory interface {
	RecentQuotes(ctx context.Context, limit int) ([]storage.QuoteRecord, error)
}

// FormService is satisfied by *forms.Service.
type FormService interface {
	SubmitContact(ctx context.Context, c forms.Contact) error
	SubmitApplication(ctx context.Context, a forms.Application) error
	SubmitCV(ctx context.Context, cv forms.CVSubmission) error
}

// Deps are the collaborators the router dispatches to. Metrics, History,
// Health and StaticDir are optional.
type Deps struct {
	Fetcher        QuoteFetcher
	History        QuoteHistory
	Stream         http.Handler
	Forms          FormService
	Search         *search.Index
	SiteURL        string
	Limiter        *RateLimiter
	Metrics        *metrics.Metrics
	Health         func(ctx context.Context) error
	StaticDir      string
	MaxUploadBytes int64
	Logger         *zap.Logger
}

type API struct {
	deps   Deps
	logger *zap.Logger
}

// NewRouter builds the mux with every route and middleware installed.
func NewRouter(deps Deps) *mux.Router {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 10 << 20
	}
	a := &API{deps: deps, logger: deps.Logger.Named("http")}

	r := mux.NewRouter()
	r.Use(requestLogger(a.logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		r.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/healthz", a.health).Methods(http.MethodGet)

	r.HandleFunc("/api/gold", a.gold).Methods(http.MethodGet)
	r.HandleFunc("/api/gold/history", a.goldHistory).Methods(http.MethodGet)
	if deps.Stream != nil {
		r.Handle("/api/gold/stream", deps.Stream).Methods(http.MethodGet)
	}

	if deps.Limiter != nil {
		deps.Limiter.onLimit = func(r *http.Request) {
			a.observeForm(formName(r.URL.Path), "limited")
		}
	}
	r.Handle("/api/contact", a.limited(a.contact)).Methods(http.MethodPost)
	r.Handle("/api/apply", a.limited(a.apply)).Methods(http.MethodPost)
	r.Handle("/api/send-cv", a.limited(a.sendCV)).Methods(http.MethodPost)

	r.HandleFunc("/api/search", a.search).Methods(http.MethodGet)
	r.HandleFunc("/api/site", a.site).Methods(http.MethodGet)
	r.HandleFunc("/sitemap.xml", a.sitemap).Methods(http.MethodGet)
	r.HandleFunc("/robots.txt", a.robots).Methods(http.MethodGet)

	if deps.StaticDir != "" {
		r.PathPrefix("/").
			MatcherFunc(notAPI).
			Handler(http.FileServer(http.Dir(deps.StaticDir))).
			Methods(http.MethodGet, http.MethodHead)
	}

	return r
}

// notAPI keeps the static tree off /api/ so method mismatches there stay 405.
func notAPI(r *http.Request, _ *mux.RouteMatch) bool {
	return !strings.HasPrefix(r.URL.Path, "/api/")
}

func (a *API) limited(h http.HandlerFunc) http.Handler {
	if a.deps.Limiter == nil {
		return h
	}
	return a.deps.Limiter.Handler(h)
}

func (a *API) observeForm(form, outcome string) {
	if a.deps.Metrics != nil {
		a.deps.Metrics.ObserveForm(form, outcome)
	}
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	if a.deps.Health != nil {
		if err := a.deps.Health(r.Context()); err != nil {
			a.logger.Warn("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
