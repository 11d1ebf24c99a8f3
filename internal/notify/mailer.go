package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPMailer delivers order notifications to the merchant inbox.
type SMTPMailer struct {
	client *mail.Client
	from   string
	to     string
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.From, to: cfg.To}, nil
}

func (m *SMTPMailer) NotifyOrderPlaced(ctx context.Context, n OrderNotification) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(n.Subject())
	msg.SetBodyString(mail.TypeTextPlain, n.Body())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send order mail: %w", err)
	}
	return nil
}
