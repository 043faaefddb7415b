// Package report runs predictions for a batch of jobs and renders the
// "<HH>:<MM> <day> - <command>" lines.
//
// A batch shares one current time. Predictions are independent, so they run
// on a bounded worker group; results are written back by input index and
// the output order always equals the input order.
package report
