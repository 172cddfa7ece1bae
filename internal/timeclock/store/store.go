package store

import (
	"context"
	"errors"
	"time"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, and a Tx scope for multi-step operations that must be
// atomic.
type Store interface {
	Users() Users
	Locations() Locations
	ClockEvents() ClockEvents

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it
	// automatically handles commit/rollback logic. The driver opens write
	// transactions eagerly, so the check-then-append sequences in the clock
	// ledger serialize per database rather than racing.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by its local id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserBySubject returns a user by its external identity subject.
	GetUserBySubject(ctx context.Context, subject string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the subject or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile sets email, name and role from a first-login upsert
	// and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, email, name string, role domain.Role) error
}

type Locations interface {
	// GetLocationByID returns a geofenced site by id.
	GetLocationByID(ctx context.Context, id string) (domain.Location, error)

	// ListLocations returns all sites ordered by name.
	ListLocations(ctx context.Context) ([]domain.Location, error)

	// CreateLocation inserts reference data (used by startup seeding only).
	CreateLocation(ctx context.Context, l domain.Location) error

	// IsEmpty returns true if no locations exist yet.
	IsEmpty(ctx context.Context) (bool, error)
}

type ClockEvents interface {
	// CreateClockEvent appends an immutable event to the ledger.
	CreateClockEvent(ctx context.Context, e domain.ClockEvent) error

	// GetLastEventForUser returns the user's most recent event by
	// timestamp, or ErrNotFound when the ledger is empty for them.
	GetLastEventForUser(ctx context.Context, userID string) (domain.ClockEvent, error)

	// ListEventsForUser returns a user's events newest first, with the
	// location relation populated.
	ListEventsForUser(ctx context.Context, userID string) ([]domain.ClockEvent, error)

	// ListEventsSince returns all events with timestamp >= since across
	// all users, ascending, with the user relation populated. This is a
	// single snapshot read for the reporting engine.
	ListEventsSince(ctx context.Context, since time.Time) ([]domain.ClockEvent, error)

	// ListLastEventPerUser returns each user's single most recent event in
	// one aggregate query, with user and location populated. Callers
	// filter for kind IN to find who is currently clocked in.
	ListLastEventPerUser(ctx context.Context) ([]domain.ClockEvent, error)
}
