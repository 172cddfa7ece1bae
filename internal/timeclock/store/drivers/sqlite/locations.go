package sqlite

import (
	"context"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
)

type locationsRepo struct {
	q querier
}

const locationColumns = `id, name, lat, lng, radius_meters, created_at`

func scanLocation(row interface{ Scan(...any) error }) (domain.Location, error) {
	var l domain.Location
	err := row.Scan(&l.ID, &l.Name, &l.Lat, &l.Lng, &l.RadiusMeters, &l.CreatedAt)
	if err != nil {
		return domain.Location{}, err
	}
	return l, nil
}

func (r *locationsRepo) GetLocationByID(ctx context.Context, id string) (domain.Location, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id)
	l, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, mapNotFound(err)
	}
	return l, nil
}

func (r *locationsRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *locationsRepo) CreateLocation(ctx context.Context, l domain.Location) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO locations (id, name, lat, lng, radius_meters, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Lat, l.Lng, l.RadiusMeters, l.CreatedAt)
	return mapConstraint(err)
}

func (r *locationsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
