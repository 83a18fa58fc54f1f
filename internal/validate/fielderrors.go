// Package validate holds the field-scoped validation primitives shared
// by the entity modules: error accumulation, phone and email format
// checks with normalization, and hex color normalization.
package validate

import (
	"sort"
	"strings"
)

// NonFieldKey scopes errors that belong to the entity as a whole rather
// than a single field ("at least one contact method required").
const NonFieldKey = "non_field"

// FieldErrors accumulates validation failures keyed by field name. It
// is never fail-fast: callers collect every problem and surface them in
// one pass.
type FieldErrors map[string]string

// Add records a message for a field, keeping the first message when a
// field already failed.
func (fe FieldErrors) Add(field, message string) {
	if _, ok := fe[field]; ok {
		return
	}
	fe[field] = message
}

// Merge copies entries from other into fe.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, message := range other {
		fe.Add(field, message)
	}
}

// Has reports whether the field has a recorded error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// OrNil returns nil when no errors were accumulated, so callers can
// `return fe.OrNil()` from validate paths.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Error implements the error interface with a stable field ordering.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+fe[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
