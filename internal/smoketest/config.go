// Package smoketest drives an end-to-end exercise of a running registry
// over HTTP: create items, read them back, delete them, and verify the
// registry's contracts held throughout.
package smoketest

import (
	"sync/atomic"
	"time"
)

// Config holds the smoke test parameters.
type Config struct {
	BaseURL  string
	NumItems int
	Workers  int
	Timeout  time.Duration
	KeepData bool
	Verbose  bool
	LogFile  string
}

// Stats accumulates counters across concurrent workers.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Created  atomic.Int64
	Failed   atomic.Int64
	Deleted  atomic.Int64
	Verified atomic.Int64
}
