// Package pages holds the full HTML documents.
package pages
