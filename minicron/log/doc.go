// Package log defines the logging interface and typed fields used across minicron.
//
// Adapters (such as the zap package) implement Logger so the predictor, the
// report batcher and the CLI log the same way regardless of backend.
package log
