package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"evently/internal/delivery/http/helpers"
	"evently/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "5e0b7b0e-2d7c-4f5a-9e57-3c0e2b6a4d11"

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	userID string
	err    error
}

func (f *fakeTokenVerifier) Verify(_ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

// fakeUsers implements UserLookup for tests.
type fakeUsers struct {
	users map[string]*domain.User
	err   error
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	users := &fakeUsers{users: map[string]*domain.User{
		testUserID: {ID: testUserID, Name: "Alice", Role: domain.RoleAttendee},
	}}

	tests := []struct {
		name          string
		authHeader    string
		verifier      domain.TokenVerifier
		users         UserLookup
		wantStatus    int
		wantMsg       string
		nextCalled    bool
		wantContextID string
	}{
		{
			name:          "valid token sets user and calls next",
			authHeader:    "Bearer valid-token",
			verifier:      &fakeTokenVerifier{userID: testUserID},
			users:         users,
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: testUserID,
		},
		{
			name:       "missing authorization header",
			verifier:   &fakeTokenVerifier{userID: testUserID},
			users:      users,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "No token, authorization denied",
		},
		{
			name:       "invalid authorization format no Bearer prefix",
			authHeader: "Basic abc",
			verifier:   &fakeTokenVerifier{userID: testUserID},
			users:      users,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid authorization header format",
		},
		{
			name:       "empty token after Bearer",
			authHeader: "Bearer ",
			verifier:   &fakeTokenVerifier{userID: testUserID},
			users:      users,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "No token, authorization denied",
		},
		{
			name:       "verifier returns error",
			authHeader: "Bearer bad-token",
			verifier:   &fakeTokenVerifier{err: domain.ErrInvalidToken},
			users:      users,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token is not valid",
		},
		{
			name:       "user no longer exists",
			authHeader: "Bearer valid-token",
			verifier:   &fakeTokenVerifier{userID: "7a7a7a7a-0000-4000-8000-000000000000"},
			users:      users,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token is not valid",
		},
		{
			name:       "user lookup fails",
			authHeader: "Bearer valid-token",
			verifier:   &fakeTokenVerifier{userID: testUserID},
			users:      &fakeUsers{err: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var capturedUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, ok := UserIDFromContext(r.Context()); ok {
					capturedUserID = id
				}
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAuth(tt.verifier, tt.users, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, tt.wantContextID, capturedUserID, "user ID in context")
				return
			}
			var body helpers.APIError
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body.Msg)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		user       *domain.User
		wantStatus int
	}{
		{"organizer passes", &domain.User{ID: testUserID, Role: domain.RoleOrganizer}, http.StatusOK},
		{"attendee is forbidden", &domain.User{ID: testUserID, Role: domain.RoleAttendee}, http.StatusForbidden},
		{"no user is forbidden", nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(domain.RoleOrganizer)(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodPost, "/events/create", nil)
			if tt.user != nil {
				req = req.WithContext(SetUser(req.Context(), tt.user))
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusForbidden {
				var body helpers.APIError
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, "Access denied. Only organizers can perform this action", body.Msg)
				assert.Equal(t, "forbidden", body.Code)
			}
		})
	}
}

func TestUserFromContext(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	ctx := SetUser(context.Background(), &domain.User{ID: testUserID, PasswordHash: "secret"})
	u, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, testUserID, u.ID)

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret", "password fields are never serialised")
}
