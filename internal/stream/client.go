package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"goldsite/internal/poller"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// reconnectDelay is the pause before each redial after the stream drops.
var reconnectDelay = 3 * time.Second

// Client follows a server's price stream, reconnecting when the connection drops.
type Client struct {
	url     string
	mode    poller.Mode
	handler func(Message)
	logger  *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn

	// writeMu serializes writes; the connection allows a single writer.
	writeMu sync.Mutex
}

func (c *Client) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

func (c *Client) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// NewClient builds a client for the stream of the server at serverURL (http or https).
func NewClient(serverURL string, mode poller.Mode, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(serverURL, "/") + "/api/gold/stream")
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	return &Client{url: withMode(u.String(), mode), mode: mode, logger: logger}, nil
}

// SetMessageHandler sets the function receiving every decoded message.
func (c *Client) SetMessageHandler(h func(Message)) {
	c.handler = h
}

// Connect dials the stream. It does not start the listener.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	target := c.url
	c.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", target, err)
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.logger.Info("stream connected", zap.String("url", target))
	return nil
}

// SetMode asks the server to switch the session's mode. Before Connect it
// only records the mode, which the dial then carries in its query.
func (c *Client) SetMode(mode poller.Mode) error {
	c.mu.Lock()
	c.mode = mode
	if c.conn == nil {
		c.url = withMode(c.url, mode)
	}
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(ClientMessage{Op: "mode", Mode: string(mode)})
}

// Mode returns the mode the client asks the server for.
func (c *Client) Mode() poller.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func withMode(raw string, mode poller.Mode) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("mode", string(mode))
	u.RawQuery = q.Encode()
	return u.String()
}

// Listen reads messages until ctx ends, reconnecting after read errors.
func (c *Client) Listen(ctx context.Context) {
	go func() {
		<-ctx.Done()
		c.closeConn()
	}()

	for {
		conn := c.current()
		if conn == nil {
			if !c.reconnect(ctx) {
				return
			}
			continue
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("stream read error", zap.Error(err))

			if !c.reconnect(ctx) {
				return
			}
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("undecodable stream message", zap.Error(err))
			continue
		}
		if c.handler != nil {
			c.handler(msg)
		}
	}
}

func (c *Client) reconnect(ctx context.Context) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(reconnectDelay):
		}

		c.mu.Lock()
		target := c.url
		c.mu.Unlock()

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
		if err != nil {
			c.logger.Warn("retrying reconnect", zap.Error(err))
			continue
		}

		c.mu.Lock()
		old := c.conn
		c.conn = conn
		c.mu.Unlock()
		if old != nil {
			_ = old.Close()
		}

		if ctx.Err() != nil {
			c.closeConn()
			return false
		}
		if err := c.SetMode(c.Mode()); err != nil {
			c.logger.Warn("failed to restore mode after reconnect", zap.Error(err))
		}
		c.logger.Info("reconnected successfully")
		return true
	}
}
