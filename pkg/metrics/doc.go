// Package metrics provides Prometheus-compatible counters for the mock.
//
// The text exposition format (text/plain; version=0.0.4) is written
// directly; there is no client library dependency.
//
// Supported metric types:
//   - Counter: monotonically increasing value with optional labels
//   - Histogram: cumulative buckets plus _sum and _count
//   - GaugeFunc: a value read from a callback at scrape time
//
// # Metrics
//
// New registers the set exposed on the management listener:
//
//   - influxmock_requests_total{method,path,status}
//   - influxmock_request_duration_seconds{method,path}
//   - influxmock_directives_total{directive}
//   - influxmock_points_written_total
//   - influxmock_points_stored
package metrics
