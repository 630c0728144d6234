// Package components holds the reusable astro cards and form controls.
package components
