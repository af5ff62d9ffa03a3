// Package metrics provides the Prometheus registry and HTTP exposition for the
// geo client. All metrics are defined in their respective packages (client,
// batch, auth, cache) via promauto and registered with the default registry.
//
// This package documents every metric and serves them to a scraper.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the geo client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler returns an HTTP handler exposing all registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - geo_requests_total{operation, status} (Counter): Requests by provider operation and
//     outcome (ok or the error kind, e.g. AuthFailure, TransportError)
//   - geo_request_duration_seconds{operation} (Histogram): Request duration by operation
//
// Batch Metrics (pkg/batch):
//   - geo_batch_chunks_total{operation, outcome} (Counter): Chunks dispatched (ok, failed)
//   - geo_batch_items_total{operation, outcome} (Counter): Items by outcome (success, error)
//
// Credential Metrics (pkg/auth):
//   - geo_auth_failures_total{cause} (Counter): Gate failures (no_credentials, fetch_error)
//
// Place Cache Metrics (pkg/cache):
//   - geo_place_cache_hits_total (Counter): Place cache hits
//   - geo_place_cache_misses_total (Counter): Place cache misses, including expired entries
//   - geo_place_cache_errors_total{operation} (Counter): Cache operation errors (get, set, delete)
//
// Example Prometheus Queries:
//
//   # Place Cache Hit Rate
//   sum(rate(geo_place_cache_hits_total[5m])) /
//   (sum(rate(geo_place_cache_hits_total[5m])) + sum(rate(geo_place_cache_misses_total[5m])))
//
//   # Batch Item Failure Ratio
//   sum(rate(geo_batch_items_total{outcome="error"}[5m])) / sum(rate(geo_batch_items_total[5m]))
//
//   # Failed Chunks (whole provider call rejected)
//   rate(geo_batch_chunks_total{outcome="failed"}[5m])
//
//   # Transport Error Rate
//   rate(geo_requests_total{status="TransportError"}[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(geo_request_duration_seconds_bucket[5m]))
