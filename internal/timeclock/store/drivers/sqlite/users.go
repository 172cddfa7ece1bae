package sqlite

import (
	"context"
	"time"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/internal/timeclock/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, subject, email, name, role, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.Subject, &u.Email, &u.Name, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserBySubject(ctx context.Context, subject string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE subject = ?`, subject)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, subject, email, name, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Subject, u.Email, u.Name, string(u.Role), u.CreatedAt, u.UpdatedAt)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, email, name string, role domain.Role) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET email = ?, name = ?, role = ?, updated_at = ? WHERE id = ?`,
		email, name, string(role), time.Now().UTC(), userID)
	if err != nil {
		return mapConstraint(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
