package clock

import "time"

// NowFunc returns current wall-clock time. Override in tests for determinism;
// simulated time is tracked separately by the kernel.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }
