// Package poller keeps the rolling price history of an open gold-rate display.
//
// A Poller is Closed until Open is called. While open it fetches a quote
// immediately and then once per mode interval, pushing every base price into
// a fixed-length history. Close stops the timer; results of fetches still in
// flight are discarded because they belong to a session that has ended.
package poller

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"goldsite/internal/memorystore"
	"goldsite/internal/price"

	"go.uber.org/zap"
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// View is what a display renders after each tick.
type View struct {
	Session   uint64      `json:"session"`
	State     string      `json:"state"`
	Mode      Mode        `json:"mode"`
	Quote     price.Quote `json:"quote"`
	Readout   Readout     `json:"readout"`
	History   []float64   `json:"history"`
	Labels    []string    `json:"labels"`
	Simulated bool        `json:"simulated"` // base was perturbed locally on this tick
}

type Option func(*Poller)

func WithMode(m Mode) Option {
	return func(p *Poller) { p.mode = m }
}

// WithJitter replaces the perturbation applied when a fetch fails.
func WithJitter(j price.JitterFunc) Option {
	return func(p *Poller) { p.jitter = j }
}

// WithPlaceholder replaces the generator of the values a fresh history is seeded with.
func WithPlaceholder(f func() float64) Option {
	return func(p *Poller) { p.placeholder = f }
}

func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// WithListener registers the function receiving every tick's View.
func WithListener(f func(View)) Option {
	return func(p *Poller) { p.listener = f }
}

func WithFetchTimeout(d time.Duration) Option {
	return func(p *Poller) { p.fetchTimeout = d }
}

// WithInterval overrides the mode interval; used by tests.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

type Poller struct {
	source       Source
	logger       *zap.Logger
	jitter       price.JitterFunc
	placeholder  func() float64
	now          func() time.Time
	listener     func(View)
	fetchTimeout time.Duration
	interval     time.Duration // zero means mode.Interval()

	mu      sync.Mutex
	state   State
	mode    Mode
	session uint64
	quote   price.Quote
	history *memorystore.History
	parent  context.Context
	cancel  context.CancelFunc
}

func New(source Source, logger *zap.Logger, opts ...Option) *Poller {
	p := &Poller{
		source:       source,
		logger:       logger,
		jitter:       price.UniformJitter(price.FallbackJitter),
		placeholder:  func() float64 { return 4200 + rand.Float64()*50 },
		now:          time.Now,
		fetchTimeout: 10 * time.Second,
		mode:         ModeSeconds,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.quote = price.Derive(price.DefaultBase, p.now())
	return p
}

// Open starts a new session. Opening an open poller does nothing.
func (p *Poller) Open(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Open {
		return
	}
	p.state = Open
	p.parent = ctx
	p.startLocked()
}

// Close ends the session and cancels its timer.
func (p *Poller) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Closed {
		return
	}
	p.stopLocked()
	p.state = Closed
	p.logger.Debug("price display closed", zap.Uint64("session", p.session))
}

// SetMode switches the interval and history length. An open poller
// restarts with a fresh history of the new length.
func (p *Poller) SetMode(m Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m == p.mode {
		return
	}
	p.mode = m
	if p.state == Open {
		p.stopLocked()
		p.startLocked()
	}
}

func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// View returns the current state of the display.
func (p *Poller) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewLocked(false)
}

func (p *Poller) startLocked() {
	p.session++
	p.history = memorystore.NewSeededHistory(p.mode.Capacity(), func(int) float64 {
		return p.placeholder()
	})

	interval := p.interval
	if interval <= 0 {
		interval = p.mode.Interval()
	}

	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel

	go p.run(ctx, p.session, interval)

	p.logger.Debug("price display opened",
		zap.Uint64("session", p.session),
		zap.String("mode", string(p.mode)),
		zap.Duration("interval", interval))
}

func (p *Poller) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	// results still in flight carry the old session and are dropped
	p.session++
}

func (p *Poller) run(ctx context.Context, session uint64, interval time.Duration) {
	p.tick(ctx, session)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx, session)
		}
	}
}

func (p *Poller) tick(ctx context.Context, session uint64) {
	// in-flight fetches are not aborted by Close, only ignored
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.fetchTimeout)
	q, err := p.source.Fetch(fetchCtx)
	cancel()

	p.mu.Lock()
	if p.state != Open || p.session != session {
		p.mu.Unlock()
		p.logger.Debug("dropping result of ended session", zap.Uint64("session", session))
		return
	}

	simulated := false
	switch {
	case err == nil:
		p.quote = q
	case errors.Is(err, ErrBadStatus):
		// keep showing the last quote
		p.logger.Warn("price endpoint rejected request, repeating last quote", zap.Error(err))
	default:
		base := p.quote.Base() + p.jitter()
		p.quote = price.Derive(base, p.now())
		p.quote.Source = price.SourceSimulated
		simulated = true
		p.logger.Warn("failed to fetch gold price, perturbing last value", zap.Error(err))
	}

	p.history.Push(p.quote.Base())
	view := p.viewLocked(simulated)
	listener := p.listener
	p.mu.Unlock()

	if listener != nil {
		listener(view)
	}
}

func (p *Poller) viewLocked(simulated bool) View {
	var history []float64
	if p.history != nil {
		history = p.history.Values()
	}
	return View{
		Session:   p.session,
		State:     p.state.String(),
		Mode:      p.mode,
		Quote:     p.quote,
		Readout:   NewReadout(p.quote.Base()),
		History:   history,
		Labels:    p.mode.Labels(),
		Simulated: simulated,
	}
}
