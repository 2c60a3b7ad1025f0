package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered      uint64
	ProfilesUpdated      uint64
	TokensIssued         uint64
	TokensRevoked        uint64
	LoginsFailed         uint64
	LoginDurationCount   uint64
	LoginDurationTotalNs int64
	AuthCacheHits        uint64
	AuthCacheMisses      uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	usersRegistered      uint64
	profilesUpdated      uint64
	tokensIssued         uint64
	tokensRevoked        uint64
	loginsFailed         uint64
	loginDurationCount   uint64
	loginDurationTotalNs int64
	authCacheHits        uint64
	authCacheMisses      uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:      atomic.LoadUint64(&m.usersRegistered),
		ProfilesUpdated:      atomic.LoadUint64(&m.profilesUpdated),
		TokensIssued:         atomic.LoadUint64(&m.tokensIssued),
		TokensRevoked:        atomic.LoadUint64(&m.tokensRevoked),
		LoginsFailed:         atomic.LoadUint64(&m.loginsFailed),
		LoginDurationCount:   atomic.LoadUint64(&m.loginDurationCount),
		LoginDurationTotalNs: atomic.LoadInt64(&m.loginDurationTotalNs),
		AuthCacheHits:        atomic.LoadUint64(&m.authCacheHits),
		AuthCacheMisses:      atomic.LoadUint64(&m.authCacheMisses),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncProfileUpdated increments the profile update counter.
func (m *InMemoryRecorder) IncProfileUpdated() {
	atomic.AddUint64(&m.profilesUpdated, 1)
}

// IncTokenIssued increments the token issuance counter.
func (m *InMemoryRecorder) IncTokenIssued() {
	atomic.AddUint64(&m.tokensIssued, 1)
}

// IncTokenRevoked increments the token revocation counter.
func (m *InMemoryRecorder) IncTokenRevoked() {
	atomic.AddUint64(&m.tokensRevoked, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// ObserveLoginDuration records login duration.
func (m *InMemoryRecorder) ObserveLoginDuration(duration time.Duration) {
	atomic.AddUint64(&m.loginDurationCount, 1)
	atomic.AddInt64(&m.loginDurationTotalNs, duration.Nanoseconds())
}

// IncAuthCacheHit increments the auth cache hit counter.
func (m *InMemoryRecorder) IncAuthCacheHit() {
	atomic.AddUint64(&m.authCacheHits, 1)
}

// IncAuthCacheMiss increments the auth cache miss counter.
func (m *InMemoryRecorder) IncAuthCacheMiss() {
	atomic.AddUint64(&m.authCacheMisses, 1)
}
