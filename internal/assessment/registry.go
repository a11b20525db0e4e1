package assessment

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/HendryAvila/compass/internal/config"
	"github.com/HendryAvila/compass/internal/scoring"
	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned for ids the registry does not hold.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned when the registry is full.
	ErrTooManySessions = errors.New("too many open sessions")
)

// newID is a package-level variable for testability.
var newID = uuid.NewString

// Registry hosts isolated sessions for a multi-user front end. Each
// session has its own lock; nothing mutable is shared between sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	catalog  *scoring.Catalog
	cfg      config.Scoring
	max      int
	idle     time.Duration
}

type entry struct {
	mu       sync.Mutex
	session  *Session
	lastUsed time.Time
}

// NewRegistry creates a registry whose sessions score against catalog.
// max caps the number of open sessions. Sessions untouched for longer
// than idle are discarded when a new one starts; idle <= 0 keeps them
// until End.
func NewRegistry(catalog *scoring.Catalog, cfg config.Scoring, max int, idle time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		catalog:  catalog,
		cfg:      cfg,
		max:      max,
		idle:     idle,
	}
}

// Catalog returns the shared, read-only rule table.
func (r *Registry) Catalog() *scoring.Catalog {
	return r.catalog
}

// Start opens a new empty session and returns its id.
func (r *Registry) Start() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := timeNow()
	r.expireLocked(now)
	if len(r.sessions) >= r.max {
		return "", fmt.Errorf("%w (limit %d)", ErrTooManySessions, r.max)
	}
	id := newID()
	if _, exists := r.sessions[id]; exists {
		return "", fmt.Errorf("session id collision: %s", id)
	}
	r.sessions[id] = &entry{session: NewSession(id, r.catalog, r.cfg), lastUsed: now}
	return id, nil
}

// expireLocked drops idle sessions. r.mu must be held.
func (r *Registry) expireLocked(now time.Time) {
	if r.idle <= 0 {
		return
	}
	for id, e := range r.sessions {
		if now.Sub(e.lastUsed) > r.idle {
			delete(r.sessions, id)
		}
	}
}

// Do runs fn with exclusive access to the session.
func (r *Registry) Do(id string, fn func(*Session) error) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		e.lastUsed = timeNow()
	}
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// End discards a session and all of its state.
func (r *Registry) End(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
