package web

import (
	"sync"
	"sync/atomic"
	"time"

	"astrocards/internal/presentation"
	"astrocards/pkg/log"

	"github.com/google/uuid"
)

// SessionCookie carries the browser's session id.
const SessionCookie = "astro_session"

// session is one browser's controller plus its last access time.
type session struct {
	controller *presentation.Controller
	lastSeen   atomic.Int64
}

// SessionStore maps session ids to presentation controllers. Sessions idle
// for longer than the TTL are dropped by a background sweep.
type SessionStore struct {
	fetcher  presentation.Fetcher
	ttl      time.Duration
	now      func() time.Time
	sessions sync.Map
	done     chan struct{}
	once     sync.Once
}

// NewSessionStore creates a store whose controllers query through fetcher.
func NewSessionStore(fetcher presentation.Fetcher, ttl time.Duration) *SessionStore {
	return newSessionStore(fetcher, ttl, time.Now, time.Minute)
}

func newSessionStore(fetcher presentation.Fetcher, ttl time.Duration, now func() time.Time, sweepEvery time.Duration) *SessionStore {
	s := &SessionStore{
		fetcher: fetcher,
		ttl:     ttl,
		now:     now,
		done:    make(chan struct{}),
	}
	go s.cleanup(sweepEvery)
	return s
}

// Lookup returns the controller for id and refreshes its idle timer.
func (s *SessionStore) Lookup(id string) (*presentation.Controller, bool) {
	value, ok := s.sessions.Load(id)
	if !ok {
		return nil, false
	}
	sess := value.(*session)
	now := s.now()
	if s.expired(sess, now) {
		s.sessions.Delete(id)
		return nil, false
	}
	sess.lastSeen.Store(now.UnixNano())
	return sess.controller, true
}

// Create starts a new session in the NoData state.
func (s *SessionStore) Create() (string, *presentation.Controller) {
	id := uuid.NewString()
	sess := &session{controller: presentation.NewController(s.fetcher)}
	sess.lastSeen.Store(s.now().UnixNano())
	s.sessions.Store(id, sess)
	return id, sess.controller
}

// Close stops the sweep.
func (s *SessionStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *SessionStore) expired(sess *session, now time.Time) bool {
	return now.Sub(time.Unix(0, sess.lastSeen.Load())) > s.ttl
}

// cleanup periodically removes idle sessions.
func (s *SessionStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *SessionStore) sweep() {
	now := s.now()
	dropped := 0
	s.sessions.Range(func(key, value any) bool {
		if s.expired(value.(*session), now) {
			s.sessions.Delete(key)
			dropped++
		}
		return true
	})
	if dropped > 0 {
		log.GlobalDebug("idle sessions dropped", "count", dropped)
	}
}
