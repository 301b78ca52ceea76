// Package forms validates and delivers the site's contact, application and
// CV forms.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"goldsite/internal/mailer"
	"goldsite/internal/relay"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const contactSubject = "New Contact Form Submission"

var (
	// ErrFileRequired is returned for a CV submission without a file.
	ErrFileRequired = errors.New("CV file is required")
	// ErrInvalid wraps field validation failures.
	ErrInvalid = errors.New("invalid form")
)

// Relay is the third-party form relay, satisfied by *relay.Client.
type Relay interface {
	SubmitJSON(ctx context.Context, fields map[string]string) (*relay.Response, error)
	SubmitMultipart(ctx context.Context, fields map[string]string, file *relay.Attachment) (*relay.Response, error)
}

// CVMailer delivers CV submissions, satisfied by *mailer.Mailer.
type CVMailer interface {
	SendCV(ctx context.Context, cv mailer.CV) error
}

type Service struct {
	relay    Relay
	mail     CVMailer
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(r Relay, m CVMailer, logger *zap.Logger) *Service {
	return &Service{
		relay:    r,
		mail:     m,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// SubmitContact forwards the contact form to the relay as JSON.
func (s *Service) SubmitContact(ctx context.Context, c Contact) error {
	if err := s.check(c); err != nil {
		return err
	}
	if _, err := s.relay.SubmitJSON(ctx, c.fields()); err != nil {
		return fmt.Errorf("relay contact form: %w", err)
	}
	s.logger.Info("contact form relayed", zap.String("country", c.Country))
	return nil
}

// SubmitApplication forwards the careers form to the relay as multipart data.
func (s *Service) SubmitApplication(ctx context.Context, a Application) error {
	if err := s.check(a); err != nil {
		return err
	}
	if _, err := s.relay.SubmitMultipart(ctx, a.fields(), nil); err != nil {
		return fmt.Errorf("relay application: %w", err)
	}
	s.logger.Info("application relayed")
	return nil
}

// SubmitCV mails the uploaded CV. The file is checked before the fields.
func (s *Service) SubmitCV(ctx context.Context, cv CVSubmission) error {
	if len(cv.File) == 0 {
		return ErrFileRequired
	}
	if err := s.check(cv); err != nil {
		return err
	}
	err := s.mail.SendCV(ctx, mailer.CV{
		Name:     cv.Name,
		Email:    cv.Email,
		Message:  cv.Message,
		Filename: cv.Filename,
		Content:  cv.File,
	})
	if err != nil {
		return fmt.Errorf("mail cv: %w", err)
	}
	return nil
}

func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, ", "))
}
