// Package event implements the kernel's chronological event queue. Events
// are emitted unordered and dispatched in (timestamp, emission order) to
// handlers keyed by event type; handler failures are isolated per handler.
package event
