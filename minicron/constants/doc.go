// Package constants holds the shared literals of minicron: field bounds,
// day labels, environment keys and telemetry names.
package constants
