package controllers

import (
	"log/slog"
	"net/http"

	"evently/internal/adapters/storage"
	h "evently/internal/delivery/http/helpers"
	"evently/internal/delivery/http/middleware"
	"evently/internal/domain"
)

// Multipart form fields of an event.
const (
	fieldTitle            = "title"
	fieldDescription      = "description"
	fieldDate             = "date"
	fieldLocation         = "location"
	fieldCategory         = "category"
	fieldRegistrationLink = "registrationLink"
)

// CreateEventResponse is the response body for POST /events/create (201).
type CreateEventResponse struct {
	Msg   string        `json:"msg"`
	Event *domain.Event `json:"event"`
}

type EventController struct {
	Logger         *slog.Logger
	Service        domain.EventService
	MaxUploadBytes int64
	ExposeErrors   bool
}

func NewEventController(logger *slog.Logger, svc domain.EventService, maxUploadBytes int64, exposeErrors bool) *EventController {
	return &EventController{
		Logger:         logger,
		Service:        svc,
		MaxUploadBytes: maxUploadBytes,
		ExposeErrors:   exposeErrors,
	}
}

// parseEventForm reads the multipart (or urlencoded) event form. Fields absent from the
// form stay nil; present ones are passed through for the service to clean and validate.
func (c *EventController) parseEventForm(w http.ResponseWriter, r *http.Request) (domain.EventInput, error) {
	var in domain.EventInput
	img, err := storage.ParseMultipartEvent(w, r, c.MaxUploadBytes)
	if err != nil {
		return in, err
	}
	in.Image = img

	field := func(name string) *string {
		vs, ok := r.PostForm[name]
		if !ok || len(vs) == 0 {
			return nil
		}
		v := vs[0]
		return &v
	}
	in.Title = field(fieldTitle)
	in.Description = field(fieldDescription)
	in.Location = field(fieldLocation)
	in.RegistrationLink = field(fieldRegistrationLink)
	if v := field(fieldCategory); v != nil {
		cat := domain.Category(*v)
		in.Category = &cat
	}
	if v := field(fieldDate); v != nil && *v != "" {
		date, err := domain.ParseDate(*v)
		if err != nil {
			return in, err
		}
		in.Date = &date
	}
	return in, nil
}

// Create godoc
// @Summary Create an event
// @Description Organizer only. Multipart form with title, description, date, location, category, optional registrationLink and optional eventImage (jpg, jpeg, png or gif, at most 5 MB).
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param date formData string true "Date (ISO 8601)"
// @Param location formData string true "Location"
// @Param category formData string true "Category" Enums(Academic, Tech and Innovation, Cultural & Entertainment, Festival, Sports)
// @Param registrationLink formData string false "External registration URL"
// @Param eventImage formData file false "Event image"
// @Success 201 {object} controllers.CreateEventResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /events/create [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, domain.ErrInvalidToken, false)
		return
	}
	in, err := c.parseEventForm(w, r)
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	event, err := c.Service.Create(r.Context(), in, userID)
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, CreateEventResponse{Msg: "Event created successfully", Event: event})
}

// List godoc
// @Summary List events
// @Description Public. Events in creation order, optionally filtered by a case-insensitive title substring and by calendar day (UTC).
// @Tags events
// @Produce json
// @Param title query string false "Title substring"
// @Param date query string false "Day, e.g. 2025-05-10"
// @Success 200 {array} domain.Event
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := c.Service.List(r.Context(), domain.ListEventsParams{
		Title: q.Get("title"),
		Date:  q.Get("date"),
	})
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	h.WriteJSON(w, http.StatusOK, events)
}

// GetByID godoc
// @Summary Get an event
// @Description Public. Includes the organizer and the list of attendees.
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} domain.Event
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Owning organizer only. Only the submitted fields change; a new eventImage replaces the old image.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param date formData string false "Date (ISO 8601)"
// @Param location formData string false "Location"
// @Param category formData string false "Category"
// @Param registrationLink formData string false "External registration URL"
// @Param eventImage formData file false "Event image"
// @Success 200 {object} domain.Event
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /events/{id} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, domain.ErrInvalidToken, false)
		return
	}
	in, err := c.parseEventForm(w, r)
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	event, err := c.Service.Update(r.Context(), r.PathValue("id"), in, userID)
	if err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Owning organizer only. Removes the event and its image.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.MessageResponse
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, domain.ErrInvalidToken, false)
		return
	}
	if err := c.Service.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(c.Logger, c.ExposeErrors, w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Event removed")
}
