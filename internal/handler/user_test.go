package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/internal/handler/dto"
	"github.com/accountd/accountd/internal/service"
)

// newTestUserHandler builds a handler whose service has no backing
// stores. Only paths that fail before touching the database can be
// exercised here; the rest live in the integration tests.
func newTestUserHandler() *UserHandler {
	svc := service.NewUserService(nil, nil, nil, 0, auth.EnvTest)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUserHandler(svc, logger)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestUserHandler_Register_InvalidJSON(t *testing.T) {
	h := newTestUserHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	if resp := decodeError(t, rec); resp.Code != "INVALID_JSON" {
		t.Errorf("expected code INVALID_JSON, got %s", resp.Code)
	}
}

func TestUserHandler_Register_ValidationErrors(t *testing.T) {
	h := newTestUserHandler()

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{
			name:     "short_password",
			body:     `{"email":"test@example.com","password":"pw","name":"Test"}`,
			wantCode: "PASSWORD_TOO_SHORT",
		},
		{
			name:     "invalid_email",
			body:     `{"email":"not-an-email","password":"testpass","name":"Test"}`,
			wantCode: "INVALID_EMAIL",
		},
		{
			name:     "missing_email",
			body:     `{"password":"testpass"}`,
			wantCode: "INVALID_EMAIL",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(test.body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}

			if resp := decodeError(t, rec); resp.Code != test.wantCode {
				t.Errorf("expected code %s, got %s", test.wantCode, resp.Code)
			}
		})
	}
}

func TestUserHandler_IssueToken_MissingCredentials(t *testing.T) {
	h := newTestUserHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/token", strings.NewReader(`{"email":"","password":""}`))
	rec := httptest.NewRecorder()

	h.IssueToken(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	if resp := decodeError(t, rec); resp.Code != "MISSING_CREDENTIALS" {
		t.Errorf("expected code MISSING_CREDENTIALS, got %s", resp.Code)
	}
}

func TestUserHandler_Me_Unauthenticated(t *testing.T) {
	h := newTestUserHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}

	if resp := decodeError(t, rec); resp.Code != "UNAUTHORIZED" {
		t.Errorf("expected code UNAUTHORIZED, got %s", resp.Code)
	}
}

func TestUserHandler_UpdateMe_Unauthenticated(t *testing.T) {
	h := newTestUserHandler()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", strings.NewReader(`{"name":"New"}`))
	rec := httptest.NewRecorder()

	h.UpdateMe(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}
