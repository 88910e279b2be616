package session

import (
	"errors"
	"sync"
	"time"

	"schooldb/internal/services/listing"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrSessionNotFound is returned for ids that were never created, were
// discarded or expired
var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	svc      *listing.Service
	lastSeen time.Time
}

// Registry manages one list service per UI session
type Registry struct {
	sessions        map[uuid.UUID]*entry
	fetcher         listing.SchoolFetcher
	defaultPageSize int
	now             func() time.Time
	mu              sync.RWMutex
}

// NewRegistry creates an empty registry whose sessions share fetcher
func NewRegistry(fetcher listing.SchoolFetcher, defaultPageSize int) *Registry {
	return &Registry{
		sessions:        make(map[uuid.UUID]*entry),
		fetcher:         fetcher,
		defaultPageSize: defaultPageSize,
		now:             time.Now,
	}
}

// Create starts a new session with fresh list state
func (r *Registry) Create() (uuid.UUID, *listing.Service) {
	id := uuid.New()
	svc := listing.NewService(r.fetcher, r.defaultPageSize)

	r.mu.Lock()
	r.sessions[id] = &entry{svc: svc, lastSeen: r.now()}
	total := len(r.sessions)
	r.mu.Unlock()

	log.Info().
		Str("session_id", id.String()).
		Int("sessions", total).
		Msg("session created")
	return id, svc
}

// Get returns the list service of a session and marks it as used
func (r *Registry) Get(id uuid.UUID) (*listing.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = r.now()
	return e.svc, nil
}

// Discard drops a session and its state
func (r *Registry) Discard(id uuid.UUID) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	log.Info().Str("session_id", id.String()).Msg("session discarded")
	return nil
}

// DiscardIdle drops every session not used for longer than idleTTL and
// returns how many were dropped
func (r *Registry) DiscardIdle(idleTTL time.Duration) int {
	r.mu.Lock()
	cutoff := r.now().Add(-idleTTL)
	var expired []uuid.UUID
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	left := len(r.sessions)
	r.mu.Unlock()

	for _, id := range expired {
		log.Info().Str("session_id", id.String()).Msg("idle session expired")
	}
	if len(expired) > 0 {
		log.Debug().Int("expired", len(expired)).Int("sessions", left).Msg("idle sessions reaped")
	}
	return len(expired)
}

// Count returns the number of live sessions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
