// Package models defines the value types shared by the rendercheck pipeline:
// page profiles, strategy decisions, caching plans, declared page
// configurations, validation findings and the combined report.
package models

import "strings"

// enumKey folds user input to a comparison key: lowercase with separators removed,
// so "OnEvent", "on_event" and "on-event" compare equal.
func enumKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// Ptr returns a pointer to v. Handy for optional hint fields in literals.
func Ptr[T any](v T) *T {
	return &v
}
