package controllers

import (
	"log/slog"
	"net/http"

	h "evently/internal/delivery/http/helpers"
	"evently/internal/delivery/http/middleware"
	"evently/internal/domain"
)

type AttendeeController struct {
	Logger       *slog.Logger
	Service      domain.AttendeeService
	ExposeErrors bool
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService, exposeErrors bool) *AttendeeController {
	return &AttendeeController{
		Logger:       logger,
		Service:      svc,
		ExposeErrors: exposeErrors,
	}
}

// RegisterForEvent godoc
// @Summary Attend an event
// @Description Registers the authenticated user for the event.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 201 {object} domain.EventRegistration
// @Failure 400 {object} helpers.APIError "code: invalid_state"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /events/{id}/register [post]
func (c *AttendeeController) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, domain.ErrInvalidToken, false)
		return
	}
	reg, err := c.Service.RegisterForEvent(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, reg)
}

// UnregisterFromEvent godoc
// @Summary Stop attending an event
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.APIError "code: invalid_state"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /events/{id}/unregister [delete]
func (c *AttendeeController) UnregisterFromEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, domain.ErrInvalidToken, false)
		return
	}
	if err := c.Service.UnregisterFromEvent(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Unregistered from event")
}

// ListMyRegisteredEvents godoc
// @Summary Events the current user attends
// @Description Returns the caller's registrations together with their events, newest first.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.EventRegistrationWithEvent
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /users/me/registrations [get]
func (c *AttendeeController) ListMyRegisteredEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, domain.ErrInvalidToken, false)
		return
	}
	items, err := c.Service.ListMyRegisteredEvents(r.Context(), userID)
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	if items == nil {
		items = []*domain.EventRegistrationWithEvent{}
	}
	h.WriteJSON(w, http.StatusOK, items)
}
