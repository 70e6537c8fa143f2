package metrics

// Set is the collection of metrics recorded by the data plane.
type Set struct {
	Registry *Registry

	// RequestsTotal counts data plane requests.
	// Labels: method, path, status
	RequestsTotal *Counter

	// RequestDuration tracks request latency in seconds, injected delays
	// included.
	// Labels: method, path
	RequestDuration *Histogram

	// DirectivesTotal counts control directives received in writes.
	// Labels: directive
	DirectivesTotal *Counter

	// PointsWrittenTotal counts points appended to the store.
	PointsWrittenTotal *Counter
}

// New creates a Set on a fresh registry. storedPoints, when not nil, backs
// the influxmock_points_stored gauge.
func New(storedPoints func() float64) *Set {
	r := NewRegistry()
	s := &Set{Registry: r}
	s.RequestsTotal = r.NewCounter(
		"influxmock_requests_total",
		"Total number of data plane requests",
		"method", "path", "status",
	)
	s.RequestDuration = r.NewHistogram(
		"influxmock_request_duration_seconds",
		"Duration of data plane requests in seconds",
		DefaultBuckets,
		"method", "path",
	)
	s.DirectivesTotal = r.NewCounter(
		"influxmock_directives_total",
		"Control directives received in write requests",
		"directive",
	)
	s.PointsWrittenTotal = r.NewCounter(
		"influxmock_points_written_total",
		"Points appended to the point store",
	)
	if storedPoints != nil {
		r.NewGaugeFunc("influxmock_points_stored", "Points currently held in the point store", storedPoints)
	}
	return s
}
