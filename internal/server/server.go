// Package server wires the site backend together from configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"goldsite/config"
	"goldsite/internal/forms"
	"goldsite/internal/httpapi"
	"goldsite/internal/mailer"
	"goldsite/internal/memorystore"
	"goldsite/internal/metrics"
	"goldsite/internal/poller"
	"goldsite/internal/price"
	"goldsite/internal/relay"
	"goldsite/internal/scheduler"
	"goldsite/internal/search"
	"goldsite/internal/site"
	"goldsite/internal/stream"
	"goldsite/pkg/metalprice"
	"goldsite/pkg/storage"
	"goldsite/pkg/storage/memory"
	"goldsite/pkg/storage/postgres"

	"go.uber.org/zap"
)

// in-process quote log size when no database is configured
const memoryLogSize = 10000

type Server struct {
	HTTP *http.Server

	scheduler *scheduler.Scheduler
	db        *postgres.PostgresClient
	logger    *zap.Logger
	errCh     chan error
}

// StartServer builds every component from cfg and starts serving.
func StartServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	site.Init()

	base := metalprice.Symbol(cfg.MetalPrice.Base)
	symbol := metalprice.Symbol(cfg.MetalPrice.Currency)
	if !base.IsValid() || !symbol.IsValid() {
		return nil, fmt.Errorf("unsupported pair %s/%s", symbol, base)
	}
	if cfg.MetalPrice.APIKey == "" {
		logger.Warn("metalprice api key is empty, quotes will be simulated")
	}

	mode, err := poller.ParseMode(cfg.Poller.Mode)
	if err != nil {
		return nil, fmt.Errorf("poller mode: %w", err)
	}

	s := &Server{logger: logger, errCh: make(chan error, 1)}

	var store storage.Store
	if cfg.Postgres.Enabled {
		db, err := postgres.InitializeAndMigrateQuoteRecord(cfg.Postgres, true)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		s.db = db
		store = db
	} else {
		store = memory.NewMemoryStore(memoryLogSize)
	}

	m := metrics.New()

	restClient := metalprice.NewRESTClient(cfg.MetalPrice.BaseURL, cfg.MetalPrice.APIKey, cfg.MetalPrice.Timeout)
	fetcher := price.NewFetcher(restClient, logger.Named("price"),
		price.WithPair(base, symbol),
		price.WithObserver(m),
		price.WithRecorder(price.StoreRecorder{Store: store}),
	)

	sessions := memorystore.NewSessionStore()
	streamHandler := stream.NewHandler(fetcher, sessions, cfg.Stream, logger.Named("stream"),
		poller.WithMode(mode),
	).WithObserver(m)

	entries, err := search.LoadSiteMap(cfg.Search.SitemapFile)
	if err != nil {
		s.closeDB()
		return nil, fmt.Errorf("load site map: %w", err)
	}
	index := search.NewIndex(entries)
	logger.Info("site map loaded", zap.Int("pages", len(entries)), zap.Int("keywords", index.Len()))

	formService := forms.NewService(
		relay.NewClient(cfg.Relay.URL, cfg.Relay.AccessKey, cfg.Relay.Timeout),
		mailer.New(cfg.Mail, logger.Named("mailer")),
		logger.Named("forms"),
	)

	limiter := httpapi.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger.Named("ratelimit"))

	router := httpapi.NewRouter(httpapi.Deps{
		Fetcher:        fetcher,
		History:        store,
		Stream:         streamHandler,
		Forms:          formService,
		Search:         index,
		SiteURL:        cfg.Site.URL,
		Limiter:        limiter,
		Metrics:        m,
		Health:         s.health,
		StaticDir:      cfg.Server.StaticDir,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
		Logger:         logger,
	})

	s.scheduler = scheduler.NewScheduler(cfg.Scheduler, store, limiter, sessions, logger.Named("scheduler"))
	if err := s.scheduler.RegisterAll(); err != nil {
		s.closeDB()
		return nil, err
	}
	s.scheduler.Start()

	s.HTTP = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errCh <- err
		}
	}()

	return s, nil
}

// Errors delivers a fatal listener error.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Shutdown drains HTTP connections, stops the scheduler and closes the database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.HTTP.Shutdown(ctx)
	s.scheduler.Stop()
	s.closeDB()
	if err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) health(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if !s.db.IsHealthy(ctx) {
		return errors.New("postgres unreachable")
	}
	return nil
}

func (s *Server) closeDB() {
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		s.logger.Warn("failed to close postgres", zap.Error(err))
	}
}
