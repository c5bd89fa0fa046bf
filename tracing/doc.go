// Package tracing is a thin wrapper around OpenTelemetry so the rest of the
// code-base can open and close spans without importing the upstream packages.
// When Init is never called every span is a no-op.
package tracing
