package domain

// StaffHours is one user's accumulated worked hours within a report window.
type StaffHours struct {
	UserID string
	Name   string
	Hours  float64 // Rounded to 2 decimal places
}

// Report aggregates worked hours over a trailing window.
//
// PeoplePerDay is, despite the name, the count of distinct users with at
// least one event anywhere in the window, not a per-day average. The name is
// kept for compatibility with the existing wire format.
type Report struct {
	WindowDays     int
	AvgHoursPerDay float64
	PeoplePerDay   int
	PerStaff       []StaffHours
}
