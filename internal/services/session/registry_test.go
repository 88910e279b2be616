package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"schooldb/internal/domain/school"
	"schooldb/internal/schoolsapi"
	"schooldb/internal/services/listing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock is a settable time source safe for use from the reaper goroutine
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newClockedRegistry() (*Registry, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)}
	reg := NewRegistry(oneRecordFetcher{}, 10)
	reg.now = clock.Now
	return reg, clock
}

type oneRecordFetcher struct{}

func (oneRecordFetcher) FetchSchools(context.Context, schoolsapi.SchoolsQuery) (*schoolsapi.SchoolsPage, error) {
	return &schoolsapi.SchoolsPage{List: []school.Record{{UUID: "only"}}, PagesCount: 1}, nil
}

func TestCreateGetDiscard(t *testing.T) {
	reg := NewRegistry(oneRecordFetcher{}, 10)

	id, svc := reg.Create()
	require.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, 1, reg.Count())

	got, err := reg.Get(id)
	require.NoError(t, err)
	assert.Same(t, svc, got)

	require.NoError(t, reg.Discard(id))
	assert.Equal(t, 0, reg.Count())

	_, err = reg.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, reg.Discard(id), ErrSessionNotFound)
}

func TestSessionsAreIsolated(t *testing.T) {
	reg := NewRegistry(oneRecordFetcher{}, 10)
	_, a := reg.Create()
	_, b := reg.Create()

	a.LoadPage(context.Background(), listing.LoadRequest{Page: 1})

	assert.Len(t, a.Snapshot().Rows, 1)
	assert.Empty(t, b.Snapshot().Rows)
}

func TestGetUnknown(t *testing.T) {
	reg := NewRegistry(oneRecordFetcher{}, 10)
	_, err := reg.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDiscardIdle(t *testing.T) {
	reg, clock := newClockedRegistry()
	idle, _ := reg.Create()
	active, _ := reg.Create()

	clock.Advance(20 * time.Minute)
	_, err := reg.Get(active)
	require.NoError(t, err)
	clock.Advance(15 * time.Minute)

	assert.Equal(t, 1, reg.DiscardIdle(30*time.Minute))
	assert.Equal(t, 1, reg.Count())

	_, err = reg.Get(idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = reg.Get(active)
	assert.NoError(t, err)
}

func TestReaperExpiresIdleSessions(t *testing.T) {
	reg, clock := newClockedRegistry()
	reg.Create()
	reg.Create()
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewReaper(reg, 30*time.Minute, 5*time.Millisecond).Run(ctx)
	}()

	require.Eventually(t, func() bool { return reg.Count() == 0 }, 2*time.Second, 5*time.Millisecond)

	id, _ := reg.Create()
	time.Sleep(20 * time.Millisecond)
	_, err := reg.Get(id)
	assert.NoError(t, err, "fresh session survives")

	cancel()
	<-done
}

func TestNewReaperDefaults(t *testing.T) {
	reg := NewRegistry(oneRecordFetcher{}, 10)

	assert.Equal(t, time.Minute, NewReaper(reg, time.Hour, 0).pollEvery)
	assert.Equal(t, 10*time.Second, NewReaper(reg, 10*time.Second, 0).pollEvery)
}
