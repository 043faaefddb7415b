// Package errgroup coordinates goroutines that share a cancellation context.
//
// The first goroutine error cancels the group context and is returned by Wait.
// Recovered panics are converted into errors. SetLimit bounds how many
// goroutines run at once, which is how the report package caps its
// prediction workers.
package errgroup
