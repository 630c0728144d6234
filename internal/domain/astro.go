// Package domain contains the core entities and rules of the astro display.
package domain

import "time"

// AstroRecord is one fully parsed answer from the astro-data provider.
// Fields are carried verbatim; nothing is cross-checked.
type AstroRecord struct {
	Name    string       `json:"name"`
	Region  string       `json:"region"`
	Country string       `json:"country"`
	Date    string       `json:"date"`
	Astro   AstroDetails `json:"astro"`
}

// AstroDetails holds the day's sun and moon events for a location.
type AstroDetails struct {
	Sunrise          string    `json:"sunrise"`
	Sunset           string    `json:"sunset"`
	Moonrise         string    `json:"moonrise"`
	Moonset          string    `json:"moonset"`
	MoonPhase        MoonPhase `json:"moon_phase"`
	MoonIllumination float64   `json:"moon_illumination"`
}

// CachedAstro is a provider-side record together with the instant it stops
// being valid (local midnight of the queried location).
type CachedAstro struct {
	Record    AstroRecord
	ExpiresAt time.Time
}

// Expired reports whether the entry is no longer valid at now.
func (c *CachedAstro) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
