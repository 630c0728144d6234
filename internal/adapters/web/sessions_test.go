package web

import (
	"sync"
	"testing"
	"time"

	"astrocards/internal/presentation"

	"github.com/stretchr/testify/require"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, ttl time.Duration) (*SessionStore, *stepClock) {
	t.Helper()
	clock := &stepClock{now: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}
	s := newSessionStore(nil, ttl, clock.Now, time.Hour)
	t.Cleanup(s.Close)
	return s, clock
}

func TestSessionStore_CreateThenLookup(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)

	id, ctrl := s.Create()
	got, ok := s.Lookup(id)

	require.True(t, ok)
	require.Same(t, ctrl, got)
	require.Equal(t, presentation.NoData, got.Snapshot().Kind())
}

func TestSessionStore_IdsAreUnique(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)

	a, _ := s.Create()
	b, _ := s.Create()

	require.NotEqual(t, a, b)
}

func TestSessionStore_UnknownID(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)

	_, ok := s.Lookup("not-a-session")

	require.False(t, ok)
}

func TestSessionStore_IdleSessionExpires(t *testing.T) {
	s, clock := newTestStore(t, 30*time.Minute)
	id, _ := s.Create()

	clock.Advance(31 * time.Minute)
	_, ok := s.Lookup(id)

	require.False(t, ok)
}

func TestSessionStore_LookupRefreshesIdleTimer(t *testing.T) {
	s, clock := newTestStore(t, 30*time.Minute)
	id, _ := s.Create()

	clock.Advance(20 * time.Minute)
	_, ok := s.Lookup(id)
	require.True(t, ok)

	clock.Advance(20 * time.Minute)
	_, ok = s.Lookup(id)
	require.True(t, ok)
}

func TestSessionStore_SweepDropsIdleSessions(t *testing.T) {
	s, clock := newTestStore(t, 30*time.Minute)
	idle, _ := s.Create()
	clock.Advance(20 * time.Minute)
	active, _ := s.Create()

	clock.Advance(15 * time.Minute)
	s.sweep()

	_, idleOK := s.sessions.Load(idle)
	_, activeOK := s.sessions.Load(active)
	require.False(t, idleOK)
	require.True(t, activeOK)
}
