package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// emailService delivers best-effort notifications through SendGrid. Callers
// treat failures as non-fatal: a lost email never rolls back the operation
// that triggered it.
type emailService struct {
	apiKey   string
	fromAddr string
	fromName string
}

func NewEmailService(apiKey, fromAddr, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		fromAddr: fromAddr,
		fromName: fromName,
	}
}

func (s *emailService) send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient address")
	}
	from := mail.NewEmail(s.fromName, s.fromAddr)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendEventApproved(ctx context.Context, to, eventTitle, note string) error {
	body := fmt.Sprintf("Your event %q has been approved and is open for registration.", eventTitle)
	if note != "" {
		body += fmt.Sprintf("\n\nReviewer note: %s", note)
	}
	return s.send(to, fmt.Sprintf("Approved: %s", eventTitle), body)
}

func (s *emailService) SendChangesRequested(ctx context.Context, to, eventTitle, note string) error {
	body := fmt.Sprintf("Your event %q needs changes before it can be approved.\n\nReviewer note: %s\n\nUpdate the event and resubmit it for review.", eventTitle, note)
	return s.send(to, fmt.Sprintf("Changes requested: %s", eventTitle), body)
}

func (s *emailService) SendEventCancelled(ctx context.Context, to, eventTitle, reason string) error {
	body := fmt.Sprintf("The event %q has been cancelled.", eventTitle)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(to, fmt.Sprintf("Cancelled: %s", eventTitle), body)
}

func (s *emailService) SendRegistrationConfirmed(ctx context.Context, to, eventTitle, token string) error {
	body := fmt.Sprintf("You are registered for %q.\n\nPresent this check-in code at the gate:\n\n%s", eventTitle, token)
	return s.send(to, fmt.Sprintf("Registered: %s", eventTitle), body)
}

func (s *emailService) SendRegistrationCancelled(ctx context.Context, to, eventTitle string) error {
	body := fmt.Sprintf("Your registration for %q has been cancelled. Your check-in code is no longer valid.", eventTitle)
	return s.send(to, fmt.Sprintf("Registration cancelled: %s", eventTitle), body)
}
