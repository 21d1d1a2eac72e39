// Package mail sends transactional email. Consumers depend on the Sender
// interface; the worker picks SMTP or the log transport from config.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/ghuser/contracthub/pkg/config"
	"github.com/ghuser/contracthub/pkg/logger"
)

// smtpTimeout bounds dial and each SMTP command when ctx has no earlier deadline.
const smtpTimeout = 10 * time.Second

// ErrInvalidRecipient is returned when a Mail has no usable address.
var ErrInvalidRecipient = errors.New("mail: invalid recipient")

// Mail is one outgoing HTML message.
type Mail struct {
	RecipientName  string
	RecipientEmail string
	Subject        string
	HTMLBody       string
}

// Sender delivers a Mail.
type Sender interface {
	Send(ctx context.Context, m Mail) error
}

// New returns the Sender selected by cfg.MailTransport.
func New(cfg *config.Config, log logger.Logger) Sender {
	if cfg.MailTransport == config.MailTransportSMTP {
		return NewSMTPSender(cfg)
	}
	return NewLogSender(log)
}

// SMTPSender delivers through an SMTP relay with PLAIN auth when credentials
// are configured. TLS is used when the relay offers STARTTLS.
type SMTPSender struct {
	fromName string
	fromAddr string
	send     func(ctx context.Context, msg *gomail.Msg) error
}

// NewSMTPSender builds a sender from the SMTP_* settings.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTimeout(smtpTimeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUsername),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}
	host := cfg.SMTPHost
	return &SMTPSender{
		fromName: cfg.MailFromName,
		fromAddr: cfg.MailFrom,
		send: func(ctx context.Context, msg *gomail.Msg) error {
			client, err := gomail.NewClient(host, opts...)
			if err != nil {
				return err
			}
			return client.DialAndSendWithContext(ctx, msg)
		},
	}
}

// Send implements Sender. Dialing and the SMTP exchange stop when ctx is done.
func (s *SMTPSender) Send(ctx context.Context, m Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := s.message(m)
	if err != nil {
		return err
	}
	if err := s.send(ctx, msg); err != nil {
		return fmt.Errorf("mail: smtp send to %s: %w", m.RecipientEmail, err)
	}
	return nil
}

// message renders m as an HTML message from the configured sender.
func (s *SMTPSender) message(m Mail) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromAddr); err != nil {
		return nil, fmt.Errorf("mail: sender address %q: %w", s.fromAddr, err)
	}
	if err := msg.AddToFormat(m.RecipientName, m.RecipientEmail); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRecipient, m.RecipientEmail)
	}
	msg.Subject(m.Subject)
	msg.SetDate()
	msg.SetBodyString(gomail.TypeTextHTML, m.HTMLBody)
	return msg, nil
}

// LogSender writes mails to the log instead of sending them. Used in
// development and when MAIL_TRANSPORT=log.
type LogSender struct {
	log logger.Logger
}

// NewLogSender returns a LogSender.
func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, m Mail) error {
	if m.RecipientEmail == "" {
		return ErrInvalidRecipient
	}
	s.log.InfoContext(ctx, "mail: not delivered (log transport)",
		"to", m.RecipientEmail,
		"subject", m.Subject,
		"body_bytes", len(m.HTMLBody),
	)
	return nil
}

var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = (*LogSender)(nil)
)
