package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// AssociateEmailAction discriminates the associate lifecycle mail to send.
type AssociateEmailAction string

const (
	AssociateEmailNew      AssociateEmailAction = "new"
	AssociateEmailApproved AssociateEmailAction = "approved"
	AssociateEmailRejected AssociateEmailAction = "rejected"
)

// IsValid reports whether a is a known associate email action.
func (a AssociateEmailAction) IsValid() bool {
	switch a {
	case AssociateEmailNew, AssociateEmailApproved, AssociateEmailRejected:
		return true
	}
	return false
}

// RequestEmailData holds data for event-request lifecycle emails
// (confirmation, approval, rejection).
type RequestEmailData struct {
	Email           string
	SubmitterName   string
	EventTitle      string
	EventDate       string
	RejectionReason string // rejection mail only
}

// AdminNotificationEmailData holds data for the new-submission alert sent to
// the bureau's admin address.
type AdminNotificationEmailData struct {
	Email          string // admin recipient
	Kind           string // "event request" or "associate"
	Title          string
	SubmitterName  string
	SubmitterEmail string
}

// AssociateEmailData holds data for associate lifecycle emails.
type AssociateEmailData struct {
	Email         string
	AssociateName string
	Action        AssociateEmailAction
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRequestConfirmation(ctx context.Context, data *RequestEmailData) error
	SendRequestApproval(ctx context.Context, data *RequestEmailData) error
	SendRequestRejection(ctx context.Context, data *RequestEmailData) error
	SendAdminNotification(ctx context.Context, data *AdminNotificationEmailData) error
	SendAssociateEmail(ctx context.Context, data *AssociateEmailData) error
}
