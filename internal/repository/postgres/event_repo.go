package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"evently/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// eventColumns selects an event joined with its organizer as u.
const eventColumns = `e.id, e.title, e.description, e.date, e.location, e.category, e.registration_link,
	e.organizer_id, e.image, e.created_at, e.updated_at, u.name, u.email`

func scanEvent(row interface{ Scan(...any) error }, extra ...any) (*domain.Event, error) {
	e := &domain.Event{Organizer: &domain.Organizer{}}
	var link, image sql.NullString
	dest := []any{
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.Category, &link,
		&e.OrganizerID, &image, &e.CreatedAt, &e.UpdatedAt, &e.Organizer.Name, &e.Organizer.Email,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	e.RegistrationLink = link.String
	e.Image = image.String
	return e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, location, category, registration_link, organizer_id, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Location, e.Category, nullString(e.RegistrationLink),
		e.OrganizerID, nullString(e.Image), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		WHERE e.id = $1
	`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

// List returns events in insertion order. Title matches are case-insensitive substrings
// with LIKE wildcards in the input matched literally.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	var conds []string
	var args []any
	if filter.Title != "" {
		args = append(args, "%"+escapeILIKEPattern(filter.Title)+"%")
		conds = append(conds, fmt.Sprintf(`e.title ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("e.date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("e.date < $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		` + where + `
		ORDER BY e.created_at, e.id
	`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id, organizerID string, patch domain.EventPatch) (*domain.Event, string, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Date != nil {
		set("date", *patch.Date)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.RegistrationLink != nil {
		set("registration_link", nullString(*patch.RegistrationLink))
	}
	if patch.Image != nil {
		set("image", nullString(*patch.Image))
	}
	args = append(args, id, organizerID)
	idArg, ownerArg := len(args)-1, len(args)

	// prev exposes the image held before this statement so the caller can remove the old file.
	query := fmt.Sprintf(`
		UPDATE events AS e SET %s
		FROM (SELECT id, image FROM events WHERE id = $%d) AS prev, users AS u
		WHERE e.id = prev.id AND e.organizer_id = $%d AND u.id = e.organizer_id
		RETURNING %s, prev.image
	`, strings.Join(setClauses, ", "), idArg, ownerArg, eventColumns)

	var previous sql.NullString
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...), &previous)
	if err != nil {
		return nil, "", err
	}
	return e, previous.String, nil
}

func (r *eventRepository) Delete(ctx context.Context, id, organizerID string) (string, error) {
	query := `DELETE FROM events WHERE id = $1 AND organizer_id = $2 RETURNING image`
	var image sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id, organizerID).Scan(&image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrEventNotFound
		}
		return "", err
	}
	return image.String, nil
}

func (r *eventRepository) ListImageRefs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT image FROM events WHERE image IS NOT NULL AND image <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]string, 0)
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// escapeILIKEPattern escapes the ILIKE metacharacters \, % and _ in user input.
func escapeILIKEPattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
