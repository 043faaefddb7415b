// Package runtime holds process-wide execution policy: production mode and
// handling of panics recovered from worker goroutines.
package runtime
