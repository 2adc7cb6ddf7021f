package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"evently/internal/domain"
	"evently/internal/metrics"
	"evently/internal/sanitize"
)

const (
	eventCachePrefix     = "events:"
	eventListCachePrefix = eventCachePrefix + "list:"
	eventByIDCachePrefix = eventCachePrefix + "id:"
)

var (
	errInvalidCategory = domain.NewValidationError(fmt.Sprintf("Category must be one of: %s", joinCategories()))
	errInvalidLink     = domain.NewValidationError("Registration link must be a valid http or https URL")
)

func joinCategories() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

type eventService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.EventRegistrationRepository
	userRepo         domain.UserRepository
	images           domain.ImageStore
	cache            domain.Cache
	cacheTTL         time.Duration
	logger           *slog.Logger
	now              func() time.Time
}

// NewEventService creates an EventService. cache may be nil to disable read caching.
func NewEventService(
	eventRepo domain.EventRepository,
	registrationRepo domain.EventRegistrationRepository,
	userRepo domain.UserRepository,
	images domain.ImageStore,
	cache domain.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) domain.EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		images:           images,
		cache:            cache,
		cacheTTL:         cacheTTL,
		logger:           logger,
		now:              time.Now,
	}
}

// Create validates every field before the image is written, and removes the image
// again if the event cannot be stored.
func (s *eventService) Create(ctx context.Context, input domain.EventInput, organizerID string) (*domain.Event, error) {
	title, description, location := cleanText(input.Title), cleanText(input.Description), cleanText(input.Location)
	if title == "" || description == "" || location == "" || input.Date == nil || input.Category == nil || *input.Category == "" {
		return nil, domain.ErrMissingFields
	}
	if !input.Category.Valid() {
		return nil, errInvalidCategory
	}
	link := cleanText(input.RegistrationLink)
	if link != "" && !validLink(link) {
		return nil, errInvalidLink
	}

	organizer, err := s.userRepo.GetByID(ctx, organizerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get organizer: %w", err)
	}

	now := s.now().UTC()
	event := &domain.Event{
		Title:            title,
		Description:      description,
		Date:             input.Date.UTC(),
		Location:         location,
		Category:         *input.Category,
		RegistrationLink: link,
		OrganizerID:      organizer.ID,
		Organizer:        &domain.Organizer{Name: organizer.Name, Email: organizer.Email},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if input.Image != nil {
		ref, err := s.images.Save(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		event.Image = ref
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.removeImage(ctx, event.Image)
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	metrics.EventsCreated.Inc()
	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "organizer_id", organizer.ID)
	return event, nil
}

func (s *eventService) List(ctx context.Context, params domain.ListEventsParams) ([]*domain.Event, error) {
	filter := domain.EventFilter{Title: strings.TrimSpace(params.Title)}
	date := strings.TrimSpace(params.Date)
	if date != "" {
		day, err := domain.ParseDate(date)
		if err != nil {
			return nil, err
		}
		from, to := domain.DayRange(day)
		filter.From, filter.To = &from, &to
	}

	key := eventListCachePrefix + filter.Title + "|" + date
	var events []*domain.Event
	if s.cacheGet(ctx, key, &events) {
		return events, nil
	}
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	s.cacheSet(ctx, key, events)
	return events, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrEventNotFound
	}
	key := eventByIDCachePrefix + id
	var cached domain.Event
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	attendees, err := s.registrationRepo.ListAttendees(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	event.Attendees = attendees
	s.cacheSet(ctx, key, event)
	return event, nil
}

// Update applies the non empty fields of input. The ownership check is repeated by the
// store in the same statement as the write, so a concurrent delete surfaces as not found.
func (s *eventService) Update(ctx context.Context, id string, input domain.EventInput, callerID string) (*domain.Event, error) {
	existing, err := s.ownedEvent(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	var patch domain.EventPatch
	if v := cleanText(input.Title); v != "" {
		patch.Title = &v
	}
	if v := cleanText(input.Description); v != "" {
		patch.Description = &v
	}
	if v := cleanText(input.Location); v != "" {
		patch.Location = &v
	}
	if input.Date != nil {
		d := input.Date.UTC()
		patch.Date = &d
	}
	if input.Category != nil && *input.Category != "" {
		if !input.Category.Valid() {
			return nil, errInvalidCategory
		}
		patch.Category = input.Category
	}
	if v := cleanText(input.RegistrationLink); v != "" {
		if !validLink(v) {
			return nil, errInvalidLink
		}
		patch.RegistrationLink = &v
	}
	if input.Image != nil {
		ref, err := s.images.Save(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		patch.Image = &ref
	}
	if patch.Empty() {
		return existing, nil
	}

	updated, previousImage, err := s.eventRepo.Update(ctx, existing.ID, callerID, patch)
	if err != nil {
		if patch.Image != nil {
			s.removeImage(ctx, *patch.Image)
		}
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if patch.Image != nil && previousImage != *patch.Image {
		s.removeImage(ctx, previousImage)
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "event updated", "event_id", updated.ID)
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, id, callerID string) error {
	existing, err := s.ownedEvent(ctx, id, callerID)
	if err != nil {
		return err
	}
	image, err := s.eventRepo.Delete(ctx, existing.ID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.removeImage(ctx, image)
	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "event deleted", "event_id", existing.ID)
	return nil
}

// ownedEvent loads the event and reports ErrNotOwner when callerID did not create it.
func (s *eventService) ownedEvent(ctx context.Context, id, callerID string) (*domain.Event, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrEventNotFound
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event.OrganizerID != callerID {
		return nil, domain.ErrNotOwner
	}
	return event, nil
}

// removeImage deletes a stored image. Failures are logged and left for the upload sweeper.
func (s *eventService) removeImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		s.logger.WarnContext(ctx, "failed to remove image", "image", ref, "err", err)
	}
}

func (s *eventService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, eventCachePrefix); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", "err", err)
	}
}

func (s *eventService) cacheGet(ctx context.Context, key string, dst any) bool {
	return cacheGet(ctx, s.cache, s.logger, key, dst)
}

func (s *eventService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "cache encode failed", "key", key, "err", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "err", err)
	}
}

// cacheGet decodes key into dst and reports a hit. Any cache failure counts as a miss.
func cacheGet(ctx context.Context, cache domain.Cache, logger *slog.Logger, key string, dst any) bool {
	if cache == nil {
		return false
	}
	data, err := cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.WarnContext(ctx, "cache read failed", "key", key, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.WarnContext(ctx, "cache decode failed", "key", key, "err", err)
		return false
	}
	return true
}

func cleanText(v *string) string {
	if v == nil {
		return ""
	}
	return sanitize.Text(*v)
}

func validLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
