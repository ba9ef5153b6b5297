// Package metrics defines and registers all custom Prometheus metrics for
// the webpage publishing API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "webpage"

// PublishesTotal counts publish/update workflow completions.
// Labels:
//   - operation: "publish" or "update"
//   - result: "success" or "error"
var PublishesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publishes_total",
		Help:      "Total number of publish and update workflow runs, by result.",
	},
	[]string{"operation", "result"},
)

// ArtifactUploadsTotal counts artifact store calls.
// Labels:
//   - op: "put" or "delete"
//   - result: "success", "rejected" (non-2xx response), or "unreachable"
var ArtifactUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "artifact_requests_total",
		Help:      "Total number of artifact store requests, by operation and result.",
	},
	[]string{"op", "result"},
)

// ArtifactCleanupFailuresTotal counts stale-artifact deletions that failed.
// Cleanup is best-effort and never fails the primary operation, so this
// counter is the only signal that orphaned artifacts need out-of-band
// reconciliation.
var ArtifactCleanupFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "artifact_cleanup_failures_total",
		Help:      "Total number of failed stale-artifact deletions (orphaned artifacts).",
	},
)

// RegistrarRequestsTotal counts subdomain registration attempts.
// Label:
//   - result: "success" or "error"
var RegistrarRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrar_requests_total",
		Help:      "Total number of subdomain registration attempts, by result.",
	},
	[]string{"result"},
)

// RenderDuration measures template rendering time.
var RenderDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "Duration of page template rendering.",
		Buckets:   prometheus.DefBuckets,
	},
)
