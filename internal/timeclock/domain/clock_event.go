package domain

import "time"

// EventKind distinguishes clock-in from clock-out events.
type EventKind string

const (
	EventIn  EventKind = "IN"
	EventOut EventKind = "OUT"
)

// ClockEvent is a single entry in a user's append-only clock ledger. Events
// are immutable once created and ordered per user by CreatedAt; consecutive
// events for a user strictly alternate kind, starting with IN.
type ClockEvent struct {
	ID         string
	UserID     string
	LocationID string
	Kind       EventKind
	Lat        float64 // Coordinate reported by the client, not the site center
	Lng        float64
	Note       *string
	CreatedAt  time.Time // Server-assigned, never client-supplied

	// Enriched relations, populated on the read/return path.
	User     *User
	Location *Location
}
