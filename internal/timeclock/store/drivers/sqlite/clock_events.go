package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
)

type clockEventsRepo struct {
	q querier
}

func scanEvent(row interface{ Scan(...any) error }) (domain.ClockEvent, error) {
	var e domain.ClockEvent
	var kind string
	var note sql.NullString
	err := row.Scan(&e.ID, &e.UserID, &e.LocationID, &kind, &e.Lat, &e.Lng, &note, &e.CreatedAt)
	if err != nil {
		return domain.ClockEvent{}, err
	}
	e.Kind = domain.EventKind(kind)
	e.Note = mapNullStringPtr(note)
	return e, nil
}

func (r *clockEventsRepo) CreateClockEvent(ctx context.Context, e domain.ClockEvent) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO clock_events (id, user_id, location_id, kind, lat, lng, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.LocationID, string(e.Kind), e.Lat, e.Lng, mapOptionalString(e.Note), e.CreatedAt)
	return mapConstraint(err)
}

func (r *clockEventsRepo) GetLastEventForUser(ctx context.Context, userID string) (domain.ClockEvent, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, location_id, kind, lat, lng, note, created_at
		 FROM clock_events
		 WHERE user_id = ?
		 ORDER BY created_at DESC
		 LIMIT 1`, userID)
	e, err := scanEvent(row)
	if err != nil {
		return domain.ClockEvent{}, mapNotFound(err)
	}
	return e, nil
}

func (r *clockEventsRepo) ListEventsForUser(ctx context.Context, userID string) ([]domain.ClockEvent, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT e.id, e.user_id, e.location_id, e.kind, e.lat, e.lng, e.note, e.created_at,
		        l.id, l.name, l.lat, l.lng, l.radius_meters, l.created_at
		 FROM clock_events e
		 JOIN locations l ON l.id = e.location_id
		 WHERE e.user_id = ?
		 ORDER BY e.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ClockEvent
	for rows.Next() {
		var e domain.ClockEvent
		var kind string
		var note sql.NullString
		var l domain.Location
		err := rows.Scan(&e.ID, &e.UserID, &e.LocationID, &kind, &e.Lat, &e.Lng, &note, &e.CreatedAt,
			&l.ID, &l.Name, &l.Lat, &l.Lng, &l.RadiusMeters, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		e.Kind = domain.EventKind(kind)
		e.Note = mapNullStringPtr(note)
		e.Location = &l
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *clockEventsRepo) ListEventsSince(ctx context.Context, since time.Time) ([]domain.ClockEvent, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT e.id, e.user_id, e.location_id, e.kind, e.lat, e.lng, e.note, e.created_at,
		        u.id, u.subject, u.email, u.name, u.role, u.created_at, u.updated_at
		 FROM clock_events e
		 JOIN users u ON u.id = e.user_id
		 WHERE e.created_at >= ?
		 ORDER BY e.created_at ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ClockEvent
	for rows.Next() {
		var e domain.ClockEvent
		var kind, role string
		var note sql.NullString
		var u domain.User
		err := rows.Scan(&e.ID, &e.UserID, &e.LocationID, &kind, &e.Lat, &e.Lng, &note, &e.CreatedAt,
			&u.ID, &u.Subject, &u.Email, &u.Name, &role, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		e.Kind = domain.EventKind(kind)
		e.Note = mapNullStringPtr(note)
		u.Role = domain.Role(role)
		e.User = &u
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *clockEventsRepo) ListLastEventPerUser(ctx context.Context) ([]domain.ClockEvent, error) {
	// Per-user timestamps are strictly increasing, so the MAX(created_at)
	// join selects exactly one row per user.
	rows, err := r.q.QueryContext(ctx,
		`SELECT e.id, e.user_id, e.location_id, e.kind, e.lat, e.lng, e.note, e.created_at,
		        u.id, u.subject, u.email, u.name, u.role, u.created_at, u.updated_at,
		        l.id, l.name, l.lat, l.lng, l.radius_meters, l.created_at
		 FROM clock_events e
		 JOIN (
		     SELECT user_id, MAX(created_at) AS last_created
		     FROM clock_events
		     GROUP BY user_id
		 ) last ON last.user_id = e.user_id AND last.last_created = e.created_at
		 JOIN users u ON u.id = e.user_id
		 JOIN locations l ON l.id = e.location_id
		 ORDER BY u.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ClockEvent
	for rows.Next() {
		var e domain.ClockEvent
		var kind, role string
		var note sql.NullString
		var u domain.User
		var l domain.Location
		err := rows.Scan(&e.ID, &e.UserID, &e.LocationID, &kind, &e.Lat, &e.Lng, &note, &e.CreatedAt,
			&u.ID, &u.Subject, &u.Email, &u.Name, &role, &u.CreatedAt, &u.UpdatedAt,
			&l.ID, &l.Name, &l.Lat, &l.Lng, &l.RadiusMeters, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		e.Kind = domain.EventKind(kind)
		e.Note = mapNullStringPtr(note)
		u.Role = domain.Role(role)
		e.User = &u
		e.Location = &l
		out = append(out, e)
	}
	return out, rows.Err()
}
