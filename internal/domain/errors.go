package domain

import "errors"

var (
	// ErrNetwork is returned when the provider could not be reached or
	// answered with a non-success status.
	ErrNetwork = errors.New("astro provider request failed")

	// ErrDecode is returned when the provider body does not match the
	// expected record shape (malformed JSON or missing fields).
	ErrDecode = errors.New("astro provider response malformed")

	// ErrLocationRequired is returned when no location was supplied.
	ErrLocationRequired = errors.New("location is required")

	// ErrLocationNotFound is returned when the upstream does not know the location.
	ErrLocationNotFound = errors.New("location not found")

	// ErrUpstream is returned when the weather upstream fails or answers with
	// an error payload.
	ErrUpstream = errors.New("weather upstream failed")
)
