package usecases

import (
	"context"
	"strings"

	"astrocards/internal/domain"
	"astrocards/pkg/log"
)

// AstroUpstream defines the interface for the weather service that knows a
// location's sun and moon events.
type AstroUpstream interface {
	Forecast(ctx context.Context, location string) (*domain.CachedAstro, error)
}

// FetchAstroUseCase handles one upstream lookup.
type FetchAstroUseCase struct {
	upstream AstroUpstream
}

// NewFetchAstroUseCase creates a new FetchAstroUseCase.
func NewFetchAstroUseCase(upstream AstroUpstream) *FetchAstroUseCase {
	return &FetchAstroUseCase{upstream: upstream}
}

// Execute asks the upstream for location's astro data.
func (uc *FetchAstroUseCase) Execute(ctx context.Context, location string) (*domain.CachedAstro, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, domain.ErrLocationRequired
	}

	entry, err := uc.upstream.Forecast(ctx, location)
	if err != nil {
		return nil, err
	}

	if !entry.Record.Astro.MoonPhase.Known() {
		log.GlobalWarnCtx(ctx, "unrecognised moon phase", "location", location, "moon_phase", entry.Record.Astro.MoonPhase)
	}

	return entry, nil
}
