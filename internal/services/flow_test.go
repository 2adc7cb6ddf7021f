package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"evently/internal/adapters/auth"
	deliveryhttp "evently/internal/delivery/http"
	"evently/internal/delivery/http/controllers"
	"evently/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flowServer struct {
	t     *testing.T
	srv   *httptest.Server
	users *fakeUserRepo
}

func newFlowServer(t *testing.T) *flowServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := newFakeUserRepo()
	events := newFakeEventRepo()
	regs := &fakeRegistrationRepo{}
	tokens := auth.NewJWTManager("flow-secret", time.Hour)

	authSvc := NewAuthService(users, newFakeResetRepo(), fakePasswordHasher{}, tokens, nil, logger)
	eventSvc := NewEventService(events, regs, users, newFakeImageStore(), newFakeCache(), time.Minute, logger)
	attendeeSvc := NewAttendeeService(events, regs, newFakeCache(), logger)

	handler := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:    logger,
		Auth:      controllers.NewAuthController(logger, authSvc, false),
		Events:    controllers.NewEventController(logger, eventSvc, 5<<20, false),
		Attendees: controllers.NewAttendeeController(logger, attendeeSvc, false),
		Verifier:  tokens,
		Users:     users,
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &flowServer{t: t, srv: srv, users: users}
}

func (f *flowServer) do(method, path, token, contentType string, body io.Reader) (*http.Response, []byte) {
	f.t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, body)
	require.NoError(f.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := f.srv.Client().Do(req)
	require.NoError(f.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(f.t, err)
	return resp, data
}

func (f *flowServer) postJSON(path, payload string) (*http.Response, []byte) {
	return f.do(http.MethodPost, path, "", "application/json", strings.NewReader(payload))
}

func (f *flowServer) login(email, password string) string {
	f.t.Helper()
	resp, body := f.postJSON("/auth/login", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(f.t, http.StatusOK, resp.StatusCode, string(body))
	var result domain.LoginResult
	require.NoError(f.t, json.Unmarshal(body, &result))
	require.NotEmpty(f.t, result.Token)
	return result.Token
}

func eventForm(t *testing.T, fields map[string]string) (string, io.Reader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), &buf
}

func TestFlow_OrganizerCreatesEventAndListsItByDate(t *testing.T) {
	f := newFlowServer(t)
	ctx := context.Background()

	// An existing organizer, bootstrapped the way `evently promote` does it.
	resp, body := f.postJSON("/auth/register", `{"name":"root","email":"root@x.edu","password":"rootpass"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	root, err := f.users.GetByEmail(ctx, "root@x.edu")
	require.NoError(t, err)
	_, err = f.users.UpdateRole(ctx, root.ID, domain.RoleOrganizer)
	require.NoError(t, err)
	rootToken := f.login("root@x.edu", "rootpass")

	resp, body = f.postJSON("/auth/register", `{"name":"alice","email":"alice@x.edu","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	alice, err := f.users.GetByEmail(ctx, "alice@x.edu")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAttendee, alice.Role)

	// Attendees cannot create events yet.
	aliceToken := f.login("alice@x.edu", "secret1")
	ct, form := eventForm(t, map[string]string{"title": "Early"})
	resp, body = f.do(http.MethodPost, "/events/create", aliceToken, ct, form)
	require.Equal(t, http.StatusForbidden, resp.StatusCode, string(body))

	resp, body = f.do(http.MethodPut, "/auth/change-role/"+alice.ID, rootToken, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var changed controllers.ChangeRoleResponse
	require.NoError(t, json.Unmarshal(body, &changed))
	assert.Equal(t, domain.RoleOrganizer, changed.User.Role)

	aliceToken = f.login("alice@x.edu", "secret1")
	ct, form = eventForm(t, map[string]string{
		"title":       "Fest",
		"category":    "Festival",
		"date":        "2025-05-01",
		"location":    "Hall A",
		"description": "...",
	})
	resp, body = f.do(http.MethodPost, "/events/create", aliceToken, ct, form)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created controllers.CreateEventResponse
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotNil(t, created.Event)
	require.NotEmpty(t, created.Event.ID)

	// Another event on a different day must not match the date filter.
	ct, form = eventForm(t, map[string]string{
		"title": "Lecture", "category": "Academic", "date": "2025-05-02",
		"location": "Room 1", "description": "Intro",
	})
	resp, body = f.do(http.MethodPost, "/events/create", rootToken, ct, form)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = f.do(http.MethodGet, "/events?date=2025-05-01", "", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var listed []domain.Event
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)
	got := listed[0]
	assert.Equal(t, created.Event.ID, got.ID)
	assert.Equal(t, "Fest", got.Title)
	assert.Equal(t, domain.Category("Festival"), got.Category)
	assert.Equal(t, "Hall A", got.Location)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), got.Date.UTC())
	require.NotNil(t, got.Organizer)
	assert.Equal(t, domain.Organizer{Name: "alice", Email: "alice@x.edu"}, *got.Organizer)
	assert.NotContains(t, string(body), "password")

	resp, body = f.do(http.MethodGet, "/events", "", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &listed))
	assert.Len(t, listed, 2)
}
