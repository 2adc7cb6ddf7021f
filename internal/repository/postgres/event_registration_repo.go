package postgres

import (
	"context"
	"database/sql"
	"errors"

	"evently/internal/domain"
)

type eventRegistrationRepository struct {
	DB *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{
		DB: db,
	}
}

func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	query := `
		INSERT INTO event_registrations (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.EventID, reg.UserID, reg.CreatedAt).Scan(&reg.ID)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyRegistered
	}
	return err
}

func (r *eventRegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2
	`
	reg := &domain.EventRegistration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotRegistered
		}
		return nil, err
	}
	return reg, nil
}

func (r *eventRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM event_registrations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.EventRegistration, 0)
	for rows.Next() {
		reg := &domain.EventRegistration{}
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *eventRegistrationRepository) ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	query := `
		SELECT u.id, u.name
		FROM event_registrations er
		JOIN users u ON u.id = er.user_id
		WHERE er.event_id = $1
		ORDER BY er.created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]domain.Attendee, 0)
	for rows.Next() {
		var a domain.Attendee
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *eventRegistrationRepository) Delete(ctx context.Context, eventID, userID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotRegistered
	}
	return nil
}
