package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/logger"
	"github.com/ghuser/contracthub/pkg/mail"
	notificationdomain "github.com/ghuser/contracthub/services/notification/domain"
	"github.com/ghuser/contracthub/services/notification/infrastructure/templates"
)

// DateLayout renders calendar dates in emails as dd/MM/yyyy.
const DateLayout = "02/01/2006"

// ProcessedStore records which events already produced an email.
type ProcessedStore interface {
	Claim(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error)
	Release(ctx context.Context, consumer string, eventID uuid.UUID) error
}

// NotificationService sends one email per event.
type NotificationService struct {
	mailer    mail.Sender
	processed ProcessedStore
	printer   *message.Printer
	log       logger.Logger
}

// NewNotificationService returns a NotificationService. A nil processed store
// disables deduplication.
func NewNotificationService(mailer mail.Sender, processed ProcessedStore, log logger.Logger) *NotificationService {
	return &NotificationService{
		mailer:    mailer,
		processed: processed,
		printer:   message.NewPrinter(language.English),
		log:       log,
	}
}

// Welcome greets a newly registered account.
func (s *NotificationService) Welcome(ctx context.Context, consumer string, evt contracts.AccountCreatedEvent) error {
	body, err := templates.Render(templates.Welcome, struct {
		FullName, Email, CreatedAt string
	}{evt.FullName, evt.Email, evt.CreatedAt.Format(DateLayout)})
	if err != nil {
		return err
	}
	return s.deliver(ctx, consumer, evt.EventID, mail.Mail{
		RecipientName:  evt.FullName,
		RecipientEmail: evt.Email,
		Subject:        "Welcome to ContractHub",
		HTMLBody:       body,
	})
}

// ContractConfirmation confirms a signed contract.
func (s *NotificationService) ContractConfirmation(ctx context.Context, consumer string, evt contracts.ContractCreatedEvent) error {
	body, err := templates.Render(templates.ContractCreated, struct {
		FullName, ContractNumber, StartDate, EndDate string
	}{evt.FullName, evt.ContractNumber, evt.CreatedAt.Format(DateLayout), evt.FinishedAt.Format(DateLayout)})
	if err != nil {
		return err
	}
	return s.deliver(ctx, consumer, evt.EventID, mail.Mail{
		RecipientName:  evt.FullName,
		RecipientEmail: evt.Email,
		Subject:        fmt.Sprintf("Contract %s confirmed", evt.ContractNumber),
		HTMLBody:       body,
	})
}

// InvoiceReminder asks the customer to pay the amount due on the contract.
func (s *NotificationService) InvoiceReminder(ctx context.Context, consumer string, evt contracts.InvoiceReminderEvent) error {
	body, err := templates.Render(templates.InvoiceReminder, struct {
		FullName, Description, ContractNumber, Amount, DueDate string
	}{evt.FullName, evt.Description, evt.ContractNumber, s.FormatAmount(evt.Amount), FormatDate(evt.DueDate)})
	if err != nil {
		return err
	}
	return s.deliver(ctx, consumer, evt.EventID, mail.Mail{
		RecipientName:  evt.FullName,
		RecipientEmail: evt.Email,
		Subject:        fmt.Sprintf("Invoice reminder for contract %s", evt.ContractNumber),
		HTMLBody:       body,
	})
}

// FormatAmount groups thousands with commas.
func (s *NotificationService) FormatAmount(amount int64) string {
	return s.printer.Sprintf("%d", amount)
}

// FormatDate renders the calendar date of t. Due dates are UTC midnights.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// deliver claims eventID for consumer and sends m once. Send failures are
// logged and dropped so a broken mail provider cannot block the queue.
func (s *NotificationService) deliver(ctx context.Context, consumer string, eventID uuid.UUID, m mail.Mail) error {
	if strings.TrimSpace(m.RecipientEmail) == "" {
		return fmt.Errorf("%w: missing recipient email", notificationdomain.ErrInvalidNotification)
	}

	if s.processed != nil && eventID != uuid.Nil {
		claimed, err := s.processed.Claim(ctx, consumer, eventID)
		if err != nil {
			return err
		}
		if !claimed {
			s.log.InfoContext(ctx, "email already sent for event, skipping", "consumer", consumer)
			return nil
		}
	}

	if err := s.mailer.Send(ctx, m); err != nil {
		if ctx.Err() != nil {
			s.release(ctx, consumer, eventID)
			return ctx.Err()
		}
		s.log.ErrorContext(ctx, "failed to send email", "consumer", consumer, "subject", m.Subject, "error", err)
		return nil
	}
	s.log.InfoContext(ctx, "email sent", "consumer", consumer, "subject", m.Subject)
	return nil
}

// release gives the claim back so a redelivery after shutdown retries the send.
func (s *NotificationService) release(ctx context.Context, consumer string, eventID uuid.UUID) {
	if s.processed == nil || eventID == uuid.Nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.processed.Release(ctx, consumer, eventID); err != nil {
		s.log.WarnContext(ctx, "failed to release processed marker", "consumer", consumer, "error", err)
	}
}
