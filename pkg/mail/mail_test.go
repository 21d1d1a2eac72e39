package mail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/ghuser/contracthub/pkg/config"
	"github.com/ghuser/contracthub/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		MailTransport: config.MailTransportSMTP,
		SMTPHost:      "smtp.example.com",
		SMTPPort:      587,
		SMTPUsername:  "mailer",
		SMTPPassword:  "secret",
		MailFrom:      "billing@example.com",
		MailFromName:  "Billing",
		LogLevel:      "error",
	}
}

func TestNew_SelectsTransport(t *testing.T) {
	cfg := testConfig()
	log := logger.New(cfg)
	if _, ok := New(cfg, log).(*SMTPSender); !ok {
		t.Error("expected SMTPSender for smtp transport")
	}
	cfg.MailTransport = config.MailTransportLog
	if _, ok := New(cfg, log).(*LogSender); !ok {
		t.Error("expected LogSender for log transport")
	}
}

func TestSMTPSender_Send(t *testing.T) {
	s := NewSMTPSender(testConfig())

	var got *gomail.Msg
	s.send = func(_ context.Context, msg *gomail.Msg) error {
		got = msg
		return nil
	}

	err := s.Send(context.Background(), Mail{
		RecipientName:  "An Nguyen",
		RecipientEmail: "an@example.com",
		Subject:        "Invoice reminder HD-NEW",
		HTMLBody:       "<p>Amount: 500,000</p>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if from := got.GetFromString(); len(from) != 1 || !strings.Contains(from[0], "billing@example.com") {
		t.Errorf("from: got %v", from)
	}
	if to := got.GetToString(); len(to) != 1 || !strings.Contains(to[0], "an@example.com") {
		t.Errorf("to: got %v", to)
	}
	if subj := got.GetGenHeader(gomail.HeaderSubject); len(subj) != 1 || subj[0] != "Invoice reminder HD-NEW" {
		t.Errorf("subject: got %v", subj)
	}

	var buf bytes.Buffer
	if _, err := got.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	for _, want := range []string{"text/html", "Amount: 500,000"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("message missing %q:\n%s", want, buf.String())
		}
	}
}

func TestSMTPSender_PassesContextToTransport(t *testing.T) {
	s := NewSMTPSender(testConfig())
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "reminder")

	s.send = func(got context.Context, _ *gomail.Msg) error {
		if got.Value(key{}) != "reminder" {
			t.Error("transport did not receive the caller's context")
		}
		return nil
	}
	if err := s.Send(ctx, Mail{RecipientEmail: "an@example.com"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestSMTPSender_CanceledContext(t *testing.T) {
	s := NewSMTPSender(testConfig())
	s.send = func(context.Context, *gomail.Msg) error {
		t.Fatal("send must not be called")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Send(ctx, Mail{RecipientEmail: "an@example.com"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSMTPSender_DialHonoursDeadline(t *testing.T) {
	cfg := testConfig()
	cfg.SMTPHost = "127.0.0.1"
	cfg.SMTPPort = 1
	s := NewSMTPSender(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	start := time.Now()
	if err := s.Send(ctx, Mail{RecipientEmail: "an@example.com"}); err == nil {
		t.Fatal("expected dial error")
	}
	if elapsed := time.Since(start); elapsed > smtpTimeout {
		t.Errorf("Send took %s, want it bounded by the context", elapsed)
	}
}

func TestSMTPSender_InvalidRecipient(t *testing.T) {
	s := NewSMTPSender(testConfig())
	s.send = func(context.Context, *gomail.Msg) error {
		t.Fatal("send must not be called")
		return nil
	}
	err := s.Send(context.Background(), Mail{RecipientEmail: "not an address"})
	if !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("expected ErrInvalidRecipient, got %v", err)
	}
}

func TestSMTPSender_WrapsTransportError(t *testing.T) {
	s := NewSMTPSender(testConfig())
	boom := errors.New("421 service not available")
	s.send = func(context.Context, *gomail.Msg) error { return boom }

	err := s.Send(context.Background(), Mail{RecipientEmail: "an@example.com"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestSMTPSender_EncodesNonASCIISubject(t *testing.T) {
	s := NewSMTPSender(testConfig())
	msg, err := s.message(Mail{
		RecipientName:  "Trần An",
		RecipientEmail: "an@example.com",
		Subject:        "Nhắc thanh toán",
		HTMLBody:       "<p>x</p>",
	})
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !strings.Contains(strings.ToLower(buf.String()), "subject: =?utf-8?q?") {
		t.Errorf("subject not Q-encoded:\n%s", buf.String())
	}
}

func TestLogSender_Send(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewLogSender(logger.NewWithWriter(buf, &config.Config{LogLevel: "info"}))

	if err := s.Send(context.Background(), Mail{RecipientEmail: "an@example.com", Subject: "Welcome"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(buf.String(), `"subject":"Welcome"`) {
		t.Errorf("log missing subject: %s", buf.String())
	}
	if err := s.Send(context.Background(), Mail{}); !errors.Is(err, ErrInvalidRecipient) {
		t.Errorf("expected ErrInvalidRecipient for empty recipient, got %v", err)
	}
}
