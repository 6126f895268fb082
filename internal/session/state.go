// Package session holds the per-visitor context: verification status,
// sidebar filters and one-shot notices.  State values are immutable;
// every transition returns a new State.
package session

import (
	"github.com/google/uuid"

	"github.com/jcpao/court-directory/internal/directory"
)

// Notice levels.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notice is a transient message shown on the next page render.
type Notice struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// State is the session context passed through request handling.
type State struct {
	ID       string
	Verified bool
	Email    string
	Filters  directory.Filters
	Notices  []Notice
}

// New returns an unverified session with default filters.
func New() State {
	return State{ID: uuid.NewString(), Filters: directory.DefaultFilters()}
}

// Verify marks the session as verified for email.
func (s State) Verify(email string) State {
	s.Verified = true
	s.Email = email
	return s
}

// Logout discards everything, filters included.
func (s State) Logout() State { return New() }

// WithFilters replaces the sidebar state.
func (s State) WithFilters(f directory.Filters) State {
	s.Filters = f.Normalize()
	return s
}

// ResetFilters restores the default filters, keeping the selected view.
func (s State) ResetFilters() State {
	s.Filters = s.Filters.Reset()
	return s
}

// Notify queues a notice for the next render.
func (s State) Notify(level, text string) State {
	notices := make([]Notice, len(s.Notices), len(s.Notices)+1)
	copy(notices, s.Notices)
	s.Notices = append(notices, Notice{Level: level, Text: text})
	return s
}

// DrainNotices returns the queued notices and a state without them.
func (s State) DrainNotices() (State, []Notice) {
	n := s.Notices
	s.Notices = nil
	return s, n
}
