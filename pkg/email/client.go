package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/inkwellpress/inkwell-backend/pkg/config"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

// Sender delivers a single transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a plain-text transactional email.
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	Body      string
	ReplyTo   string
}

// Client wraps the SendGrid API with the configured sender identity.
type Client struct {
	api      sendClient
	fromName string
	fromAddr string
}

type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest, error)
}

// NewClient validates the SendGrid settings and returns a ready sender.
func NewClient(ctx context.Context, cfg config.SendgridConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("sendgrid api key is required")
	}
	fromAddr := strings.TrimSpace(cfg.DefaultFrom)
	if fromAddr == "" {
		return nil, errors.New("sendgrid from email is required")
	}

	if logg != nil {
		logg.Info(ctx, "sendgrid client initialized")
	}

	return &Client{
		api:      &sendgridAdapter{client: sendgrid.NewSendClient(apiKey)},
		fromName: cfg.FromName,
		fromAddr: fromAddr,
	}, nil
}

// Send delivers the message once; no retry on failure.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil || c.api == nil {
		return errors.New("email client not initialized")
	}
	if strings.TrimSpace(msg.ToAddress) == "" {
		return errors.New("recipient address is required")
	}

	from := mail.NewEmail(c.fromName, c.fromAddr)
	to := mail.NewEmail(msg.ToName, msg.ToAddress)
	email := mail.NewSingleEmailPlainText(from, msg.Subject, to, msg.Body)
	if msg.ReplyTo != "" {
		email.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	resp, err := c.api.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp != nil && resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// rest mirrors the subset of the SendGrid REST response we inspect.
type rest struct {
	StatusCode int
	Body       string
}

type sendgridAdapter struct {
	client *sendgrid.Client
}

func (a *sendgridAdapter) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest, error) {
	resp, err := a.client.SendWithContext(ctx, email)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return &rest{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}
