package listing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"schooldb/internal/domain/school"
	"schooldb/internal/schoolsapi"

	"github.com/rs/zerolog/log"
)

// SchoolFetcher is the part of the registry client the list needs
type SchoolFetcher interface {
	FetchSchools(ctx context.Context, q schoolsapi.SchoolsQuery) (*schoolsapi.SchoolsPage, error)
}

// Observer receives a snapshot after every state transition
type Observer func(State)

// Service holds the list state of one UI session and mediates between UI
// intents and the registry client.
type Service struct {
	fetcher         SchoolFetcher
	defaultPageSize int

	mu        sync.Mutex
	state     State
	observers map[int]Observer
	nextObsID int

	// notifyMu orders deliveries; delivered is the newest revision handed out
	notifyMu  sync.Mutex
	delivered uint64
}

// NewService creates a list service with an empty first page
func NewService(fetcher SchoolFetcher, defaultPageSize int) *Service {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	return &Service{
		fetcher:         fetcher,
		defaultPageSize: defaultPageSize,
		state: State{
			Pagination: Pagination{CurrentPage: 1, TotalPages: 1, PageSize: defaultPageSize},
			Rows:       []school.Row{},
			SearchRows: []school.Row{},
		},
		observers: make(map[int]Observer),
	}
}

// LoadPage fetches a page and folds the result into the state. It never
// fails: errors end up in State.Error. The returned snapshot is the state
// right after this call settled.
//
// Overlapping calls are allowed; a response that arrives after a newer call
// was dispatched is dropped, and Loading stays set until the newest call
// settles.
func (s *Service) LoadPage(ctx context.Context, req LoadRequest) State {
	req.Normalize(s.defaultPageSize)
	page := req.EffectivePage()

	s.mu.Lock()
	if req.firstPage() {
		s.state.Rows = []school.Row{}
	}
	s.state.Loading = true
	s.state.Error = ""
	s.state.CurrentRegion = req.RegionID
	s.state.CurrentStatus = req.Status
	s.state.Generation++
	gen := s.state.Generation
	s.commitAndUnlock()

	logger := log.With().
		Uint64("generation", gen).
		Int("page", page).
		Int("count", req.PageSize).
		Int("region_id", req.RegionID).
		Bool("append", req.Append).
		Logger()

	start := time.Now()
	result, err := s.fetcher.FetchSchools(ctx, schoolsapi.SchoolsQuery{
		Page:     page,
		Count:    req.PageSize,
		RegionID: req.RegionID,
		Status:   req.Status,
	})

	s.mu.Lock()
	if gen != s.state.Generation {
		snap := s.state.clone()
		s.mu.Unlock()
		logger.Debug().
			Uint64("current_generation", snap.Generation).
			Msg("dropping stale page response")
		return snap
	}

	if err != nil {
		s.state.Error = fmt.Sprintf(LoadErrorFormat, req.Page)
		if req.firstPage() {
			s.state.Rows = []school.Row{}
		}
		logger.Error().Err(err).Dur("took", time.Since(start)).Msg("page load failed")
	} else {
		if result == nil {
			result = &schoolsapi.SchoolsPage{}
		}
		rows := school.ToRows(result.List)
		if req.Append {
			s.state.Rows = append(s.state.Rows, rows...)
		} else {
			s.state.Rows = rows
		}
		if req.Append || req.Page != 1 {
			s.state.SearchRows = append(s.state.SearchRows, rows...)
		} else {
			s.state.SearchRows = append([]school.Row{}, rows...)
		}
		s.state.TotalPages = TotalPagesFrom(result.PagesCount)
		s.state.CurrentPage = page
		s.state.PageSize = req.PageSize
		logger.Info().
			Int("rows", len(rows)).
			Int("search_rows", len(s.state.SearchRows)).
			Int("total_pages", s.state.TotalPages).
			Dur("took", time.Since(start)).
			Msg("page loaded")
	}

	s.state.Loading = false
	return s.commitAndUnlock()
}

// ClearError drops the current error message
func (s *Service) ClearError() State {
	s.mu.Lock()
	s.state.Error = ""
	return s.commitAndUnlock()
}

// Snapshot returns a copy of the current state
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers an observer. Observers run on the goroutine that made
// the transition, after the service lock is released, so they may call
// Snapshot. Deliveries are serialized and never go back in Revision: a
// snapshot that lost the race to a newer one is not delivered. Observers
// must not call LoadPage or ClearError.
func (s *Service) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = o
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// commitAndUnlock bumps the revision, snapshots the state, releases the lock
// and notifies observers. Must be called with s.mu held.
func (s *Service) commitAndUnlock() State {
	s.state.Revision++
	snap := s.state.clone()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	s.notify(snap, observers)
	return snap
}

// notify hands snap to observers unless a newer revision was already delivered
func (s *Service) notify(snap State, observers []Observer) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if snap.Revision <= s.delivered {
		return
	}
	s.delivered = snap.Revision
	for _, o := range observers {
		o(snap.clone())
	}
}
