// Package session tracks each user's progress through the task
// creation dialog. Sessions live only in process memory: a restart
// drops any in-progress dialog back to idle, which is an accepted
// limitation.
package session

import (
	"sync"

	"github.com/avdeeva/task-tracker-bot/internal/model"
)

// Step is the user's position in the task creation dialog.
type Step int

const (
	StepIdle Step = iota
	StepAwaitingCategory
	StepAwaitingName
	StepAwaitingDeadline
)

// String returns the step name for logging.
func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepAwaitingCategory:
		return "awaiting_category"
	case StepAwaitingName:
		return "awaiting_name"
	case StepAwaitingDeadline:
		return "awaiting_deadline"
	default:
		return "unknown"
	}
}

// Draft is the partially built task accumulated across dialog steps.
type Draft struct {
	Category model.Category
	Name     string
}

// Session is one user's dialog state.
type Session struct {
	Step  Step
	Draft Draft
}

// Reset returns the session to idle and discards the draft.
func (s *Session) Reset() {
	s.Step = StepIdle
	s.Draft = Draft{}
}

// userSession pairs a session with the mutex that serializes all
// event handling for its user.
type userSession struct {
	mu      sync.Mutex
	session Session
}

// Manager owns the per-user sessions and their locks. Events for
// different users proceed concurrently; two events for the same user
// never overlap.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*userSession
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*userSession),
	}
}

// get returns the user's session entry, creating it on first contact.
func (m *Manager) get(userID int64) *userSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	us, ok := m.sessions[userID]
	if !ok {
		us = &userSession{}
		m.sessions[userID] = us
	}
	return us
}

// WithSession runs fn with exclusive access to the user's session.
// The per-user lock is held for the whole call, so callers are free
// to combine session reads, store mutations, and session writes into
// one atomic unit with respect to that user's other events.
func (m *Manager) WithSession(userID int64, fn func(s *Session) error) error {
	us := m.get(userID)

	us.mu.Lock()
	defer us.mu.Unlock()

	return fn(&us.session)
}

// Step reports the user's current dialog step.
func (m *Manager) Step(userID int64) Step {
	us := m.get(userID)

	us.mu.Lock()
	defer us.mu.Unlock()

	return us.session.Step
}
