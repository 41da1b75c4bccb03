package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a class of failure.
type Code string

const (
	InvalidEnumValue         Code = "invalid_enum_value"
	InvalidParameter         Code = "invalid_parameter"
	TypeImmutableConflict    Code = "type_immutable_conflict"
	UnknownCategory          Code = "unknown_category"
	CrawledPropertyNotFound  Code = "crawled_property_not_found"
	ManagedPropertyNotFound  Code = "managed_property_not_found"
	AmbiguousCrawledProperty Code = "ambiguous_crawled_property"
	NoDefaultIndex           Code = "no_default_index"
	DocumentInvalid          Code = "document_invalid"
)

// Error is a classified failure. Entity, Value and Legal are optional and only printed
// when set.
type Error struct {
	Code Code
	// Entity names the entity the failure belongs to (e.g. `managed property "Title"`).
	Entity string
	// Value is the offending input value.
	Value string
	// Legal lists the accepted values, if the failure is a membership check.
	Legal []string
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Entity != "" {
		b.WriteString(": ")
		b.WriteString(e.Entity)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (value %q)", e.Value)
	}
	if len(e.Legal) > 0 {
		fmt.Fprintf(&b, " (legal: %s)", strings.Join(e.Legal, ", "))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code, so sentinel-style
// comparisons like errors.Is(err, &Error{Code: NoDefaultIndex}) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error with the given cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// WithEntity sets the entity label and returns e.
func (e *Error) WithEntity(kind, name string) *Error {
	e.Entity = fmt.Sprintf("%s %q", kind, name)
	return e
}

// CodeOf returns the code of the outermost *Error in err's chain, or "" if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Has reports whether any *Error in err's chain carries code.
func Has(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}
