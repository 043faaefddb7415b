// Package zap bridges the minicron/log abstraction to go.uber.org/zap.
//
// Loggers built here write JSON to stderr, so the prediction report on
// stdout stays machine-readable, and tee every entry into the OpenTelemetry
// log bridge.
package zap
