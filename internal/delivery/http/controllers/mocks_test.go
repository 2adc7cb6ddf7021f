package controllers

import (
	"context"
	"io"
	"log/slog"

	"evently/internal/domain"
)

const (
	testUserID  = "5e0b7b0e-2d7c-4f5a-9e57-3c0e2b6a4d11"
	testEventID = "9b2f4c1e-8d3a-4e6b-a1c2-7f5e3d9b0a44"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockAuthService struct {
	registerErr error
	loginResult *domain.LoginResult
	loginErr    error
	changeUser  *domain.User
	changeErr   error
	resetErr    error

	gotName, gotEmail, gotPassword, gotCode, gotTarget string
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	m.gotName, m.gotEmail, m.gotPassword = name, email, password
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return &domain.User{ID: testUserID, Name: name, Email: email, Role: domain.RoleAttendee}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	m.gotEmail, m.gotPassword = email, password
	return m.loginResult, m.loginErr
}

func (m *mockAuthService) ChangeRole(ctx context.Context, targetUserID string) (*domain.User, error) {
	m.gotTarget = targetUserID
	return m.changeUser, m.changeErr
}

func (m *mockAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	m.gotEmail = email
	return m.resetErr
}

func (m *mockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	m.gotEmail, m.gotCode, m.gotPassword = email, code, newPassword
	return m.resetErr
}

type mockEventService struct {
	event  *domain.Event
	events []*domain.Event
	err    error

	called    bool
	gotInput  domain.EventInput
	gotID     string
	gotCaller string
	gotParams domain.ListEventsParams
}

func (m *mockEventService) Create(ctx context.Context, input domain.EventInput, organizerID string) (*domain.Event, error) {
	m.called, m.gotInput, m.gotCaller = true, input, organizerID
	return m.event, m.err
}

func (m *mockEventService) List(ctx context.Context, params domain.ListEventsParams) ([]*domain.Event, error) {
	m.called, m.gotParams = true, params
	return m.events, m.err
}

func (m *mockEventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	m.called, m.gotID = true, id
	return m.event, m.err
}

func (m *mockEventService) Update(ctx context.Context, id string, input domain.EventInput, callerID string) (*domain.Event, error) {
	m.called, m.gotID, m.gotInput, m.gotCaller = true, id, input, callerID
	return m.event, m.err
}

func (m *mockEventService) Delete(ctx context.Context, id, callerID string) error {
	m.called, m.gotID, m.gotCaller = true, id, callerID
	return m.err
}

type mockAttendeeService struct {
	registration  *domain.EventRegistration
	registrations []*domain.EventRegistrationWithEvent
	err           error

	gotEventID, gotUserID string
}

func (m *mockAttendeeService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	m.gotEventID, m.gotUserID = eventID, userID
	return m.registration, m.err
}

func (m *mockAttendeeService) UnregisterFromEvent(ctx context.Context, eventID, userID string) error {
	m.gotEventID, m.gotUserID = eventID, userID
	return m.err
}

func (m *mockAttendeeService) ListMyRegisteredEvents(ctx context.Context, userID string) ([]*domain.EventRegistrationWithEvent, error) {
	m.gotUserID = userID
	return m.registrations, m.err
}
