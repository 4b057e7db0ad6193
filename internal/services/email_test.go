package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serraturismo/internal/domain"
)

type fakeMailer struct {
	sendErr error
	lastTo  string
	lastSub string
	sends   int
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	f.sends++
	f.lastTo = to
	f.lastSub = subject
	return f.sendErr
}

type fakeRenderer struct {
	renderErr error
	lastName  string
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.lastName = templateName
	if f.renderErr != nil {
		return "", "", "", f.renderErr
	}
	return "subject:" + templateName, "<p>html</p>", "text", nil
}

func testEmailService(mailer *fakeMailer, renderer *fakeRenderer) domain.EmailService {
	return NewEmailService(mailer, renderer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEmailService_RequestMails(t *testing.T) {
	data := &domain.RequestEmailData{Email: "maria@example.com", EventTitle: "Festival"}

	tests := []struct {
		name         string
		send         func(svc domain.EmailService) error
		wantTemplate string
	}{
		{"confirmation", func(svc domain.EmailService) error {
			return svc.SendRequestConfirmation(context.Background(), data)
		}, "confirmation"},
		{"approval", func(svc domain.EmailService) error {
			return svc.SendRequestApproval(context.Background(), data)
		}, "approval"},
		{"rejection", func(svc domain.EmailService) error {
			return svc.SendRequestRejection(context.Background(), data)
		}, "rejection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			renderer := &fakeRenderer{}
			require.NoError(t, tt.send(testEmailService(mailer, renderer)))
			assert.Equal(t, tt.wantTemplate, renderer.lastName)
			assert.Equal(t, "maria@example.com", mailer.lastTo)
		})
	}
}

func TestEmailService_AssociateActionSelectsTemplate(t *testing.T) {
	for _, action := range []domain.AssociateEmailAction{
		domain.AssociateEmailNew,
		domain.AssociateEmailApproved,
		domain.AssociateEmailRejected,
	} {
		mailer := &fakeMailer{}
		renderer := &fakeRenderer{}
		err := testEmailService(mailer, renderer).SendAssociateEmail(context.Background(), &domain.AssociateEmailData{
			Email:         "joao@example.com",
			AssociateName: "Pousada",
			Action:        action,
		})
		require.NoError(t, err)
		assert.Equal(t, "associate_"+string(action), renderer.lastName)
	}
}

func TestEmailService_InvalidAssociateAction(t *testing.T) {
	mailer := &fakeMailer{}
	err := testEmailService(mailer, &fakeRenderer{}).SendAssociateEmail(context.Background(), &domain.AssociateEmailData{
		Email:  "joao@example.com",
		Action: "deleted",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, mailer.sends)
}

func TestEmailService_MissingRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	err := testEmailService(mailer, &fakeRenderer{}).SendRequestConfirmation(context.Background(), &domain.RequestEmailData{})
	assert.Error(t, err)
	assert.Zero(t, mailer.sends)
}

func TestEmailService_ProviderErrorIsWrapped(t *testing.T) {
	mailer := &fakeMailer{sendErr: errors.New("ses: throttled")}
	err := testEmailService(mailer, &fakeRenderer{}).SendAdminNotification(context.Background(), &domain.AdminNotificationEmailData{
		Email: "admin@example.com",
		Kind:  "event request",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ses: throttled")
}
