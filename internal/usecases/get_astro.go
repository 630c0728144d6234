package usecases

import (
	"context"
	"strings"
	"time"

	"astrocards/internal/domain"
	"astrocards/pkg/log"
)

const dateLayout = "2006-01-02"

// AstroCache defines the interface for caching astro entries per location
// and day.
type AstroCache interface {
	Get(ctx context.Context, location, date string) (*domain.CachedAstro, bool, error)
	Set(ctx context.Context, location, date string, entry *domain.CachedAstro) error
}

// GetAstroUseCase handles retrieving astro data with a cache-first strategy.
type GetAstroUseCase struct {
	cache   AstroCache
	fetcher *FetchAstroUseCase
	now     func() time.Time
}

// NewGetAstroUseCase creates a new GetAstroUseCase.
func NewGetAstroUseCase(cache AstroCache, fetcher *FetchAstroUseCase) *GetAstroUseCase {
	return &GetAstroUseCase{
		cache:   cache,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for the cache date and expiry checks.
func (uc *GetAstroUseCase) WithClock(now func() time.Time) *GetAstroUseCase {
	uc.now = now
	return uc
}

// Execute returns astro data for location, checking the cache first. Cache
// failures are logged and treated as misses.
func (uc *GetAstroUseCase) Execute(ctx context.Context, location string) (*domain.CachedAstro, error) {
	if strings.TrimSpace(location) == "" {
		return nil, domain.ErrLocationRequired
	}

	now := uc.now()
	date := now.Format(dateLayout)

	entry, found, err := uc.cache.Get(ctx, location, date)
	if err != nil {
		log.GlobalWarnCtx(ctx, "cache read failed", "location", location, "error", err)
	}
	if found && !entry.Expired(now) {
		log.GlobalDebugCtx(ctx, "cache hit", "location", location, "date", date)
		return entry, nil
	}

	log.GlobalDebugCtx(ctx, "cache miss, fetching", "location", location, "date", date)

	entry, err = uc.fetcher.Execute(ctx, location)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, location, date, entry); err != nil {
		log.GlobalWarnCtx(ctx, "cache write failed", "location", location, "error", err)
	}

	return entry, nil
}
