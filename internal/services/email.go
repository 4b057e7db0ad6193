package services

import (
	"context"
	"fmt"
	"log/slog"

	"serraturismo/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRequestConfirmation acknowledges a new event request to its submitter.
func (s *emailService) SendRequestConfirmation(ctx context.Context, data *domain.RequestEmailData) error {
	return s.send("confirmation", data, dataEmail(data))
}

// SendRequestApproval notifies the submitter that their event was published.
func (s *emailService) SendRequestApproval(ctx context.Context, data *domain.RequestEmailData) error {
	return s.send("approval", data, dataEmail(data))
}

// SendRequestRejection notifies the submitter of a rejection with its reason.
func (s *emailService) SendRequestRejection(ctx context.Context, data *domain.RequestEmailData) error {
	return s.send("rejection", data, dataEmail(data))
}

// SendAdminNotification alerts the bureau's admin address about a new submission.
func (s *emailService) SendAdminNotification(ctx context.Context, data *domain.AdminNotificationEmailData) error {
	if data == nil {
		return fmt.Errorf("admin notification data is nil")
	}
	return s.send("admin_notification", data, data.Email)
}

// SendAssociateEmail sends the associate lifecycle mail selected by the action
// discriminator (new, approved, rejected).
func (s *emailService) SendAssociateEmail(ctx context.Context, data *domain.AssociateEmailData) error {
	if data == nil {
		return fmt.Errorf("associate email data is nil")
	}
	if !data.Action.IsValid() {
		return domain.ErrInvalidInput
	}
	return s.send("associate_"+string(data.Action), data, data.Email)
}

func dataEmail(data *domain.RequestEmailData) string {
	if data == nil {
		return ""
	}
	return data.Email
}

func (s *emailService) send(templateName string, data any, to string) error {
	if to == "" {
		return fmt.Errorf("missing recipient for %s email", templateName)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.Info("email sent", "template", templateName, "to", to)
	return nil
}
