// Package assert checks invariants that valid input can never break.
//
// A failed check logs at error level, marks the active span and returns a
// *Violation wrapping ErrViolated. It never panics.
package assert
