// Package mailer forwards CV submissions by email over SMTP.
package mailer

import (
	"context"
	"fmt"
	"io"

	"goldsite/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const defaultAttachmentName = "CV.pdf"

// Sender delivers messages; *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// CV is one careers submission with its attached file.
type CV struct {
	Name     string
	Email    string
	Message  string
	Filename string
	Content  []byte
}

type Mailer struct {
	sender Sender
	from   string
	to     string
	logger *zap.Logger
}

// New builds a Mailer sending through the configured SMTP relay.
func New(cfg config.MailConfig, logger *zap.Logger) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return NewWithSender(d, cfg.From, cfg.To, logger)
}

func NewWithSender(sender Sender, from, to string, logger *zap.Logger) *Mailer {
	return &Mailer{sender: sender, from: from, to: to, logger: logger}
}

// SendCV mails the submission with the CV attached.
func (m *Mailer) SendCV(ctx context.Context, cv CV) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := BuildCVMessage(m.from, m.to, cv)
	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send cv mail: %w", err)
	}

	m.logger.Info("cv submission mailed",
		zap.String("from", cv.Email),
		zap.Int("attachment_bytes", len(cv.Content)))
	return nil
}

// BuildCVMessage composes the notification mail for a CV submission.
func BuildCVMessage(from, to string, cv CV) *gomail.Message {
	body := cv.Message
	if body == "" {
		body = "No message provided."
	}

	filename := cv.Filename
	if filename == "" {
		filename = defaultAttachmentName
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	if cv.Email != "" {
		msg.SetHeader("Reply-To", cv.Email)
	}
	msg.SetHeader("Subject", "New CV Submission from "+cv.Name)
	msg.SetBody("text/plain", fmt.Sprintf("%s (%s) sent a message:\n\n%s", cv.Name, cv.Email, body))

	content := cv.Content
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	}))

	return msg
}
