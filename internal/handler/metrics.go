package handler

import (
	"fmt"
	"net/http"

	"github.com/accountd/accountd/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "accountd_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "accountd_profiles_updated_total %d\n", snap.ProfilesUpdated)

	writeMetric(w, "accountd_tokens_issued_total %d\n", snap.TokensIssued)
	writeMetric(w, "accountd_tokens_revoked_total %d\n", snap.TokensRevoked)

	writeMetric(w, "accountd_logins_failed_total %d\n", snap.LoginsFailed)
	writeMetric(w, "accountd_login_duration_seconds_count %d\n", snap.LoginDurationCount)
	writeMetric(w, "accountd_login_duration_seconds_sum %.6f\n", float64(snap.LoginDurationTotalNs)/1e9)

	writeMetric(w, "accountd_auth_cache_hits_total %d\n", snap.AuthCacheHits)
	writeMetric(w, "accountd_auth_cache_misses_total %d\n", snap.AuthCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
