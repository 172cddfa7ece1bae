package clocksdk

import "time"

// ErrorResponse is the wire shape of every API error.
type ErrorResponse struct {
	// Error is the stable machine-readable error code
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// UserResponse is the acting user's profile, returned by GET /v1/me and
// POST /v1/first-login.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationResponse is one geofenced site from GET /v1/locations.
type LocationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters float64 `json:"radius_meters"`
}

// ClockRequest is the body for POST /v1/clock/in and POST /v1/clock/out.
type ClockRequest struct {
	// LocationID identifies the site the user is clocking at
	LocationID string `json:"location_id"`

	// Lat/Lng is the position reported by the client device
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	// Note is an optional free-text remark attached to the event
	Note *string `json:"note,omitempty"`
}

// ClockEventResponse is one ledger entry.
type ClockEventResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	LocationID string    `json:"location_id"`
	Kind       string    `json:"kind"` // "IN" or "OUT"
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Note       *string   `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// LocationName is attached on read paths for display purposes
	LocationName string `json:"location_name,omitempty"`
}

// EventsResponse is the body of GET /v1/events.
type EventsResponse struct {
	Events []ClockEventResponse `json:"events"`
}

// ClockedInStaff is one currently clocked-in user from
// GET /v1/staff/clocked-in.
type ClockedInStaff struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name"`
	Since        time.Time `json:"since"`
}

// ClockedInResponse is the body of GET /v1/staff/clocked-in.
type ClockedInResponse struct {
	Staff []ClockedInStaff `json:"staff"`
}

// StaffHoursResponse is one user's accumulated hours in a report.
type StaffHoursResponse struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Hours  float64 `json:"hours"`
}

// ReportResponse is the body of GET /v1/report.
//
// PeoplePerDay is the count of distinct users with at least one event in
// the window; the name is kept for wire compatibility.
type ReportResponse struct {
	WindowDays     int                  `json:"window_days"`
	AvgHoursPerDay float64              `json:"avg_hours_per_day"`
	PeoplePerDay   int                  `json:"people_per_day"`
	PerStaff       []StaffHoursResponse `json:"per_staff"`
}

// HealthResponse is the body of GET /livez and GET /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Uptime  string        `json:"uptime"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Verifier string `json:"verifier"`
}
