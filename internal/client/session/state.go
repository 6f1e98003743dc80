package session

import "github.com/Sinduaditya/fisikaap-sub000/internal/client/models"

type Status int

const (
	Uninitialized Status = iota
	Unauthenticated
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// State is a snapshot of the in-memory session. Snapshots are copies;
// mutating one does not affect the Manager.
type State struct {
	User        *models.User
	Loading     bool
	Initialized bool
}

// IsAuthenticated is true only once bootstrap has initialized the session
// and an identity is loaded.
func (s State) IsAuthenticated() bool {
	return s.User != nil && s.Initialized
}

func (s State) Status() Status {
	switch {
	case !s.Initialized:
		return Uninitialized
	case s.User == nil:
		return Unauthenticated
	}
	return Authenticated
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// AuthResult reports an expected login or registration outcome. A rejected
// attempt is OK == false with the server's message and field errors; it is
// not an error.
type AuthResult struct {
	OK          bool
	Message     string
	FieldErrors map[string][]string
}
