package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

// go test -v --run TestBuildCVMessage
func TestBuildCVMessage(t *testing.T) {
	msg := BuildCVMessage("hr@example.com", "jobs@example.com", CV{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Content: []byte("%PDF-1.4"),
	})

	if got := msg.GetHeader("Subject"); len(got) != 1 || got[0] != "New CV Submission from Ada Lovelace" {
		t.Errorf("unexpected subject: %v", got)
	}
	if got := msg.GetHeader("To"); len(got) != 1 || got[0] != "jobs@example.com" {
		t.Errorf("unexpected recipient: %v", got)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	raw := buf.String()
	if !strings.Contains(raw, "Ada Lovelace (ada@example.com) sent a message:") {
		t.Errorf("missing body intro in:\n%s", raw)
	}
	if !strings.Contains(raw, "No message provided.") {
		t.Errorf("expected default message in:\n%s", raw)
	}
	if !strings.Contains(raw, `filename="CV.pdf"`) {
		t.Errorf("expected default attachment name in:\n%s", raw)
	}
}

// go test -v --run TestSendCV
func TestSendCV(t *testing.T) {
	sender := &captureSender{}
	m := NewWithSender(sender, "hr@example.com", "hr@example.com", zap.NewNop())

	err := m.SendCV(context.Background(), CV{Name: "Ada", Email: "ada@example.com", Filename: "ada.pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.sent))
	}

	sender.err = errors.New("535 auth failed")
	if err := m.SendCV(context.Background(), CV{Name: "Ada"}); err == nil {
		t.Error("expected send error")
	}
}

// go test -v --run TestSendCVCanceled
func TestSendCVCanceled(t *testing.T) {
	sender := &captureSender{}
	m := NewWithSender(sender, "a@b.co", "a@b.co", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.SendCV(ctx, CV{Name: "Ada"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Error("nothing should be sent after cancel")
	}
}
