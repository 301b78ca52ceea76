package price

import (
	"context"
	"time"

	"goldsite/pkg/metalprice"

	"go.uber.org/zap"
)

// RateSource is the upstream spot-rate lookup, satisfied by *metalprice.RESTClient.
type RateSource interface {
	GetRate(ctx context.Context, base, symbol metalprice.Symbol) (float64, error)
}

// Recorder stores emitted quotes for auditing.
type Recorder interface {
	RecordQuote(ctx context.Context, q Quote) error
}

// Observer is notified of every emitted quote's source.
type Observer interface {
	ObserveQuote(source Source)
}

type Option func(*Fetcher)

// WithJitter replaces the fallback perturbation.
func WithJitter(j JitterFunc) Option {
	return func(f *Fetcher) { f.jitter = j }
}

// WithClock replaces the wall clock used for quote timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// WithRecorder appends every emitted quote to r.
func WithRecorder(r Recorder) Option {
	return func(f *Fetcher) { f.recorder = r }
}

// WithObserver reports every emitted quote's source to o.
func WithObserver(o Observer) Option {
	return func(f *Fetcher) { f.observer = o }
}

// WithPair overrides the requested pair (default XAU in USD).
func WithPair(base, symbol metalprice.Symbol) Option {
	return func(f *Fetcher) {
		f.base = base
		f.symbol = symbol
	}
}

// Fetcher produces a Quote on every call and never fails.
type Fetcher struct {
	rates    RateSource
	base     metalprice.Symbol
	symbol   metalprice.Symbol
	logger   *zap.Logger
	jitter   JitterFunc
	now      func() time.Time
	recorder Recorder
	observer Observer
}

func NewFetcher(rates RateSource, logger *zap.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		rates:  rates,
		base:   metalprice.USD,
		symbol: metalprice.XAU,
		logger: logger,
		jitter: UniformJitter(FallbackJitter),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch asks the upstream for the spot price. Any failure is absorbed and
// replaced by DefaultBase plus a random offset. The fallback reference is
// the constant on every call; consecutive failures oscillate around it
// rather than drifting.
func (f *Fetcher) Fetch(ctx context.Context) Quote {
	source := SourceUpstream

	base, err := f.rates.GetRate(ctx, f.base, f.symbol)
	if err != nil {
		f.logger.Warn("upstream price unavailable, simulating",
			zap.String("symbol", string(f.symbol)), zap.Error(err))
		base = DefaultBase + f.jitter()
		source = SourceSimulated
	}

	q := Derive(base, f.now())
	q.Source = source

	if f.observer != nil {
		f.observer.ObserveQuote(source)
	}
	f.record(q)

	return q
}

func (f *Fetcher) record(q Quote) {
	if f.recorder == nil {
		return
	}

	// independent of the request context
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := f.recorder.RecordQuote(ctx, q); err != nil {
		f.logger.Warn("failed to record quote", zap.Error(err))
	}
}
