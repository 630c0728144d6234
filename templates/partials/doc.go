// Package partials holds the fragments htmx swaps into the page.
package partials
