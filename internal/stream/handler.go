package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"goldsite/config"
	"goldsite/internal/memorystore"
	"goldsite/internal/poller"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Observer is told when streams open and close.
type Observer interface {
	StreamOpened()
	StreamClosed()
}

// Handler serves GET /api/gold/stream. Every websocket connection owns one
// poller session: opened on connect, closed when the connection ends.
type Handler struct {
	fetcher      poller.QuoteFetcher
	sessions     *memorystore.MemorySessionStore
	logger       *zap.Logger
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	pollerOpts   []poller.Option
	observer     Observer
}

func NewHandler(fetcher poller.QuoteFetcher, sessions *memorystore.MemorySessionStore,
	cfg config.StreamConfig, logger *zap.Logger, opts ...poller.Option) *Handler {
	h := &Handler{
		fetcher:      fetcher,
		sessions:     sessions,
		logger:       logger,
		writeTimeout: cfg.WriteTimeout,
		pollerOpts:   opts,
	}
	if h.writeTimeout <= 0 {
		h.writeTimeout = 5 * time.Second
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     allowOrigins(cfg.Origins),
	}
	return h
}

// WithObserver reports stream open/close to o.
func (h *Handler) WithObserver(o Observer) *Handler {
	h.observer = o
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := append([]poller.Option{}, h.pollerOpts...)
	if raw := r.URL.Query().Get("mode"); raw != "" {
		mode, err := poller.ParseMode(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts = append(opts, poller.WithMode(mode))
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	log := h.logger.With(zap.String("session", id))

	h.sessions.Add(id, time.Now())
	defer h.sessions.Remove(id)

	if h.observer != nil {
		h.observer.StreamOpened()
		defer h.observer.StreamClosed()
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var writeMu sync.Mutex
	send := func(msg Message) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		return conn.WriteJSON(msg)
	}

	opts = append(opts,
		poller.WithListener(func(v poller.View) {
			if err := send(Message{Type: "tick", Session: id, View: &v}); err != nil {
				log.Warn("failed to push tick, closing stream", zap.Error(err))
				// unblocks the read loop below
				_ = conn.Close()
			}
		}),
	)

	p := poller.New(poller.FetcherSource{Fetcher: h.fetcher}, log, opts...)
	p.Open(ctx)
	defer p.Close()

	log.Info("price stream opened", zap.String("mode", string(p.Mode())))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read error", zap.Error(err))
			}
			break
		}
		h.handleClientMessage(data, p, send, log)
	}

	log.Info("price stream closed")
}

func (h *Handler) handleClientMessage(data []byte, p *poller.Poller, send func(Message) error, log *zap.Logger) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return // ignore anything that isn't a command
	}

	switch msg.Op {
	case "mode":
		mode, err := poller.ParseMode(msg.Mode)
		if err != nil {
			if sendErr := send(Message{Type: "error", Error: err.Error()}); sendErr != nil {
				log.Warn("failed to send error message", zap.Error(sendErr))
			}
			return
		}
		p.SetMode(mode)
	}
}

func allowOrigins(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
