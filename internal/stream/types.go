package stream

import "goldsite/internal/poller"

// Message is pushed to the browser for every poller tick.
type Message struct {
	Type    string       `json:"type"`    // "tick" or "error"
	Session string       `json:"session"` // connection id
	View    *poller.View `json:"view,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ClientMessage is sent by the browser, e.g. {"op":"mode","mode":"hours"}.
type ClientMessage struct {
	Op   string `json:"op"`
	Mode string `json:"mode"`
}
