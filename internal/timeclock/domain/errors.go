package domain

// ErrorKind tags every domain failure with one of a closed set of
// conditions so callers can branch on kind rather than string-match.
// Only Transient failures are safe to retry without changing the request.
type ErrorKind string

const (
	KindUnauthorized     ErrorKind = "unauthorized"
	KindForbidden        ErrorKind = "forbidden"
	KindNotFound         ErrorKind = "not_found"
	KindOutsidePerimeter ErrorKind = "outside_perimeter"
	KindInvalidState     ErrorKind = "invalid_state"
	KindTransient        ErrorKind = "transient"
)

// Error is a tagged domain failure with a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Retryable reports whether retrying the same request could succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransient
}

var (
	// ErrUnauthorized is returned when no verified acting identity is available.
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}

	// ErrForbidden is returned when the acting user lacks the required role.
	ErrForbidden = &Error{Kind: KindForbidden, Message: "forbidden"}

	// ErrLocationNotFound is returned when the referenced location does not exist.
	ErrLocationNotFound = &Error{Kind: KindNotFound, Message: "location not found"}

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = &Error{Kind: KindNotFound, Message: "user not found"}

	// ErrOutsidePerimeter is returned when the reported coordinate lies
	// outside the location's allowed radius.
	ErrOutsidePerimeter = &Error{Kind: KindOutsidePerimeter, Message: "outside allowed perimeter"}

	// ErrAlreadyClockedIn rejects a clock-in while an IN event is open.
	ErrAlreadyClockedIn = &Error{Kind: KindInvalidState, Message: "already clocked in"}

	// ErrNotClockedIn rejects a clock-out with no open IN event.
	ErrNotClockedIn = &Error{Kind: KindInvalidState, Message: "not clocked in"}
)

// TransientError wraps a store or collaborator outage as a retryable failure.
func TransientError(msg string) *Error {
	return &Error{Kind: KindTransient, Message: msg}
}
