package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwellpress/inkwell-backend/pkg/config"
	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
	"github.com/inkwellpress/inkwell-backend/pkg/email"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

// Submission is a validated contact form payload.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Service stores contact submissions and notifies the site owner.
type Service interface {
	Submit(ctx context.Context, sub Submission) (*models.ContactMessage, error)
}

type service struct {
	repo   Repository
	mailer email.Sender
	cfg    config.ContactConfig
	logg   *logger.Logger
}

// NewService wires the contact pipeline. The mailer is optional; without
// one, submissions are stored but nobody is notified.
func NewService(repo Repository, mailer email.Sender, cfg config.ContactConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "contact repository required")
	}
	return &service{repo: repo, mailer: mailer, cfg: cfg, logg: logg}, nil
}

func (s *service) Submit(ctx context.Context, sub Submission) (*models.ContactMessage, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	subject := strings.TrimSpace(sub.Subject)
	if subject == "" {
		subject = s.cfg.DefaultSubject
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Subject: subject,
		Message: sub.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store contact message")
	}

	// Notification is best-effort: the submission is already stored, a
	// delivery failure must not bubble up to the visitor.
	if err := s.notify(ctx, msg); err != nil && s.logg != nil {
		s.logg.Error(ctx, "contact.notify_failed", err)
	}

	return msg, nil
}

func (s *service) notify(ctx context.Context, msg *models.ContactMessage) error {
	if s.mailer == nil || strings.TrimSpace(s.cfg.NotifyEmail) == "" {
		return nil
	}
	body := fmt.Sprintf(
		"Name: %s\nEmail: %s\n\n%s",
		msg.Name, msg.Email, msg.Message,
	)
	return s.mailer.Send(ctx, email.Message{
		ToAddress: s.cfg.NotifyEmail,
		Subject:   msg.Subject,
		Body:      body,
		ReplyTo:   msg.Email,
	})
}

func validateSubmission(sub Submission) error {
	missing := []string{}
	if strings.TrimSpace(sub.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(sub.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(sub.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}
