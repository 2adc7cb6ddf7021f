package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"evently/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		expose     bool
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", domain.ErrEventNotFound, false, http.StatusNotFound, "not_found", "Event not found"},
		{"wrapped owner", fmt.Errorf("update: %w", domain.ErrNotOwner), false, http.StatusUnauthorized, "unauthorized", "User not authorized"},
		{"forbidden", domain.ErrForbidden, false, http.StatusForbidden, "forbidden", "Access denied. Only organizers can perform this action"},
		{"duplicate is 400", domain.ErrDuplicateEmail, false, http.StatusBadRequest, "conflict", "User already exists"},
		{"invalid state is 400", domain.ErrAlreadyOrganizer, false, http.StatusBadRequest, "invalid_state", "User is already an organizer"},
		{"credentials are 400", domain.ErrInvalidCredentials, false, http.StatusBadRequest, "invalid_credentials", "Invalid credentials"},
		{"hidden server error", errors.New("pq: connection refused"), false, http.StatusInternalServerError, "internal_error", "Server error"},
		{"exposed server error", errors.New("pq: connection refused"), true, http.StatusInternalServerError, "internal_error", "Server error: pq: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err, tt.expose)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var body APIError
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Msg)
		})
	}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s signupRequest) Validate() []string { return ValidateStruct(s) }

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOK  bool
		wantMsg string
	}{
		{"valid", `{"email":"a@b.co","password":"secret1"}`, true, ""},
		{"unknown field", `{"email":"a@b.co","password":"secret1","role":"organizer"}`, false, "unknown field"},
		{"malformed", `{"email":`, false, "Invalid request body"},
		{"missing password", `{"email":"a@b.co"}`, false, "password is required"},
		{"bad email and short password", `{"email":"nope","password":"123"}`, false, "Please include a valid email; password must be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest signupRequest

			ok := DecodeAndValidate(rr, req, &dest)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				return
			}
			require.Equal(t, http.StatusBadRequest, rr.Code)
			var body APIError
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, "bad_request", body.Code)
			assert.Contains(t, body.Msg, tt.wantMsg)
		})
	}
}
