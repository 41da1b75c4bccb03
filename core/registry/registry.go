// Package registry holds the fixed tables that map human-readable type and option names
// onto the metadata store's internal codes.
//
// Tables are read-only after package initialisation. Lookups are case-insensitive and
// fail with errs.InvalidEnumValue listing the legal names.
package registry

import (
	"strings"

	"search-schema/core/errs"
)

type entry[T ~int] struct {
	name string
	code T
}

// Table maps names to codes of type T.
type Table[T ~int] struct {
	kind    string
	entries []entry[T]
}

func newTable[T ~int](kind string, entries ...entry[T]) *Table[T] {
	return &Table[T]{kind: kind, entries: entries}
}

// Parse returns the code registered for name.
func (t *Table[T]) Parse(name string) (T, error) {
	for _, e := range t.entries {
		if strings.EqualFold(e.name, name) {
			return e.code, nil
		}
	}
	var zero T
	return zero, &errs.Error{
		Code:  errs.InvalidEnumValue,
		Msg:   "unknown " + t.kind,
		Value: name,
		Legal: t.Names(),
	}
}

// Name returns the canonical name of code, or "" when code is not registered.
// The first name registered for a code wins.
func (t *Table[T]) Name(code T) string {
	for _, e := range t.entries {
		if e.code == code {
			return e.name
		}
	}
	return ""
}

// Names lists the legal names in registration order.
func (t *Table[T]) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.name
	}
	return names
}
