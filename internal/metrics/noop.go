package metrics

import "time"

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncUserRegistered()                          {}
func (n *NoopRecorder) IncProfileUpdated()                          {}
func (n *NoopRecorder) IncTokenIssued()                             {}
func (n *NoopRecorder) IncTokenRevoked()                            {}
func (n *NoopRecorder) IncLoginFailed()                             {}
func (n *NoopRecorder) ObserveLoginDuration(duration time.Duration) {}
func (n *NoopRecorder) IncAuthCacheHit()                            {}
func (n *NoopRecorder) IncAuthCacheMiss()                           {}
