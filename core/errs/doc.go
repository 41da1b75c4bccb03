// Package errs defines the error taxonomy shared by the registry, the reconcilers and the
// document parser.
//
// Every fatal condition is reported as an *Error carrying a Code. Callers branch on the
// code with Has or CodeOf rather than matching message text, which keeps wrapping with
// fmt.Errorf("...: %w", err) safe.
//
// # Usage
//
//	if errs.Has(err, errs.TypeImmutableConflict) {
//	    // manual delete and recreate required
//	}
package errs
