// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered()
	IncProfileUpdated()

	// Token metrics
	IncTokenIssued()
	IncTokenRevoked()
	IncLoginFailed()
	ObserveLoginDuration(duration time.Duration)

	// Auth middleware metrics
	IncAuthCacheHit()
	IncAuthCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
