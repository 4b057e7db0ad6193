package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serraturismo/internal/domain"
)

type fakeAuthService struct {
	err       error
	lastEmail string
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error) {
	f.lastEmail = email
	if f.err != nil {
		return "", nil, f.err
	}
	return "tok-123", &domain.AdminUser{ID: "ad-1", Email: email}, nil
}

func postLogin(ctrl *AuthController, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ctrl.Login(rr, req)
	return rr
}

func TestAuthController_Login(t *testing.T) {
	fake := &fakeAuthService{}
	ctrl := NewAuthController(testLogger(), fake)

	rr := postLogin(ctrl, `{"email":"admin@example.com","password":"secret"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	res := decodeEnvelope(t, rr)
	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tok-123", data["token"])
	assert.Equal(t, "admin@example.com", fake.lastEmail)
}

func TestAuthController_LoginRejectsBadCredentials(t *testing.T) {
	ctrl := NewAuthController(testLogger(), &fakeAuthService{err: domain.ErrInvalidCredentials})

	rr := postLogin(ctrl, `{"email":"admin@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	res := decodeEnvelope(t, rr)
	require.NotNil(t, res.Error)
	assert.Equal(t, "unauthorized", res.Error.Code)
}

func TestAuthController_LoginValidation(t *testing.T) {
	fake := &fakeAuthService{}
	ctrl := NewAuthController(testLogger(), fake)

	for name, body := range map[string]string{
		"missing email":    `{"password":"secret"}`,
		"missing password": `{"email":"admin@example.com"}`,
		"empty body":       `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			rr := postLogin(ctrl, body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, fake.lastEmail)
		})
	}
}
