package session

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Reaper periodically discards sessions that have been idle too long
type Reaper struct {
	registry  *Registry
	idleTTL   time.Duration
	pollEvery time.Duration
}

// NewReaper creates a reaper for reg. A zero pollEvery defaults to a
// minute, or to idleTTL when that is shorter.
func NewReaper(reg *Registry, idleTTL, pollEvery time.Duration) *Reaper {
	if pollEvery == 0 {
		pollEvery = time.Minute
		if idleTTL > 0 && idleTTL < pollEvery {
			pollEvery = idleTTL
		}
	}

	return &Reaper{
		registry:  reg,
		idleTTL:   idleTTL,
		pollEvery: pollEvery,
	}
}

// Run reaps idle sessions until ctx is cancelled
func (w *Reaper) Run(ctx context.Context) {
	log.Info().
		Dur("idle_ttl", w.idleTTL).
		Dur("poll_every", w.pollEvery).
		Msg("session reaper started")

	ticker := time.NewTicker(w.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session reaper stopping")
			return
		case <-ticker.C:
			w.registry.DiscardIdle(w.idleTTL)
		}
	}
}
