// Package presentation holds the UI state of one astro session and the
// read-only views derived from it.
package presentation

import (
	"context"
	"sync"

	"astrocards/internal/domain"
	"astrocards/pkg/log"
)

// StatusFetchFailed is shown when a submission could not produce a record.
// Network and decode failures look the same to the user.
const StatusFetchFailed = "Couldn't load astro data. Please try again."

// Fetcher is the Query Client as seen by the controller.
type Fetcher interface {
	FetchAstro(ctx context.Context, location string) (*domain.AstroRecord, error)
}

// Kind is the controller's state machine position.
type Kind int

const (
	// NoData is the initial state: only the search form renders.
	NoData Kind = iota
	// HasData means a record is present; there is no way back to NoData.
	HasData
)

func (k Kind) String() string {
	if k == HasData {
		return "HasData"
	}
	return "NoData"
}

// State is an immutable snapshot handed to renderers.
type State struct {
	Location string
	Record   *domain.AstroRecord
	Status   string
}

// Kind reports NoData or HasData.
func (s State) Kind() Kind {
	if s.Record != nil {
		return HasData
	}
	return NoData
}

// Controller owns one session's LocationQuery and current record.
//
// Submissions are sequenced: each OnSubmit takes the next id, and a result is
// applied only if no newer submission was issued while it was in flight.
// Overlapping submissions therefore end with the newest one's outcome,
// regardless of arrival order.
type Controller struct {
	fetcher Fetcher

	mu     sync.Mutex
	state  State
	issued uint64
}

// NewController creates a controller in the NoData state.
func NewController(fetcher Fetcher) *Controller {
	return &Controller{fetcher: fetcher}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	if s.Record != nil {
		rec := *s.Record
		s.Record = &rec
	}
	return s
}

// OnLocationChanged replaces the location verbatim. It never fetches.
func (c *Controller) OnLocationChanged(text string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Location = text
	return c.snapshotLocked()
}

// OnSubmit fetches the record for the current location and returns the
// resulting state. Failures keep the previous record and set Status.
func (c *Controller) OnSubmit(ctx context.Context) State {
	id, location := c.begin()

	record, err := c.fetcher.FetchAstro(ctx, location)

	return c.resolve(ctx, id, location, record, err)
}

// begin issues a new submission id and captures the location to query.
func (c *Controller) begin() (uint64, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued, c.state.Location
}

// resolve applies the outcome of submission id unless a newer one was issued.
func (c *Controller) resolve(ctx context.Context, id uint64, location string, record *domain.AstroRecord, err error) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id != c.issued {
		log.GlobalDebugCtx(ctx, "stale astro response discarded",
			"location", location, "request_seq", id, "latest_seq", c.issued, "failed", err != nil)
		return c.snapshotLocked()
	}

	if err != nil {
		log.GlobalWarnCtx(ctx, "astro fetch failed", "location", location, "error", err)
		c.state.Status = StatusFetchFailed
		return c.snapshotLocked()
	}

	rec := *record
	c.state.Record = &rec
	c.state.Status = ""
	return c.snapshotLocked()
}
