package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"evently/internal/domain"
)

type attendeeService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.EventRegistrationRepository
	cache            domain.Cache
	logger           *slog.Logger
}

// NewAttendeeService creates an AttendeeService with the given repositories.
// cache may be nil; when set, the event's cached detail view is dropped on every change.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	registrationRepo domain.EventRegistrationRepository,
	cache domain.Cache,
	logger *slog.Logger,
) domain.AttendeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &attendeeService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		cache:            cache,
		logger:           logger,
	}
}

func (s *attendeeService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	if !domain.ValidID(eventID) {
		return nil, domain.ErrEventNotFound
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	reg := domain.NewEventRegistration(eventID, userID, time.Now().UTC())
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("create event registration: %w", err)
	}
	s.invalidate(ctx, eventID)
	return reg, nil
}

func (s *attendeeService) UnregisterFromEvent(ctx context.Context, eventID, userID string) error {
	if !domain.ValidID(eventID) {
		return domain.ErrEventNotFound
	}
	if err := s.registrationRepo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotRegistered) {
			return err
		}
		return fmt.Errorf("delete event registration: %w", err)
	}
	s.invalidate(ctx, eventID)
	return nil
}

func (s *attendeeService) ListMyRegisteredEvents(ctx context.Context, userID string) ([]*domain.EventRegistrationWithEvent, error) {
	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	// Fetch events one by one (N+1); a user attends a handful of events.
	eventsByID := make(map[string]*domain.Event)
	result := make([]*domain.EventRegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		ev, ok := eventsByID[reg.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, reg.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrEventNotFound) {
					// Deleted between the two reads.
					continue
				}
				return nil, fmt.Errorf("get event for registration: %w", err)
			}
			eventsByID[reg.EventID] = ev
		}
		result = append(result, &domain.EventRegistrationWithEvent{
			Registration: reg,
			Event:        ev,
		})
	}
	return result, nil
}

func (s *attendeeService) invalidate(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, eventByIDCachePrefix+eventID); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", "event_id", eventID, "err", err)
	}
}
