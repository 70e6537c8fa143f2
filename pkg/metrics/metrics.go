package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// ErrDuplicateMetric is returned when registering a metric with a name that is already registered.
var ErrDuplicateMetric = errors.New("duplicate metric name")

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric is the interface implemented by all metric types.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	// Collect returns all samples for exposition.
	Collect() []Sample
}

// Sample is a single exposed value.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// float64 stored as bits for atomic access.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := a.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if a.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// series keeps one value per label combination.
type series[V any] struct {
	name       string
	help       string
	labelNames []string
	newValue   func() *V

	mu     sync.RWMutex
	labels map[string]map[string]string
	values map[string]*V
}

func newSeries[V any](name, help string, labelNames []string, newValue func() *V) *series[V] {
	return &series[V]{
		name:       name,
		help:       help,
		labelNames: labelNames,
		newValue:   newValue,
		labels:     make(map[string]map[string]string),
		values:     make(map[string]*V),
	}
}

func (s *series[V]) get(values []string) (*V, error) {
	if len(values) != len(s.labelNames) {
		return nil, fmt.Errorf("%w: %s expected %d labels, got %d", ErrLabelCountMismatch, s.name, len(s.labelNames), len(values))
	}
	key := strings.Join(values, "\x00")

	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok = s.values[key]; ok {
		return v, nil
	}
	labels := make(map[string]string, len(values))
	for i, n := range s.labelNames {
		labels[n] = values[i]
	}
	v = s.newValue()
	s.values[key] = v
	s.labels[key] = labels
	return v, nil
}

func (s *series[V]) each(fn func(labels map[string]string, v *V)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(s.labels[k], s.values[k])
	}
}

// Counter is a monotonically increasing metric.
type Counter struct {
	s *series[atomicFloat64]
}

func newCounter(name, help string, labelNames []string) *Counter {
	return &Counter{s: newSeries(name, help, labelNames, func() *atomicFloat64 { return &atomicFloat64{} })}
}

func (c *Counter) Name() string { return c.s.name }
func (c *Counter) Help() string { return c.s.help }
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// Inc adds one to the series selected by labelValues.
func (c *Counter) Inc(labelValues ...string) error {
	return c.Add(1, labelValues...)
}

// Add adds delta to the series selected by labelValues.
func (c *Counter) Add(delta float64, labelValues ...string) error {
	if delta < 0 {
		return fmt.Errorf("%w: counter %s", ErrNegativeCounterValue, c.s.name)
	}
	v, err := c.s.get(labelValues)
	if err != nil {
		return err
	}
	v.Add(delta)
	return nil
}

// Value returns the current value of a series, 0 when it was never touched.
func (c *Counter) Value(labelValues ...string) float64 {
	key := strings.Join(labelValues, "\x00")
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	if v, ok := c.s.values[key]; ok {
		return v.Load()
	}
	return 0
}

func (c *Counter) Collect() []Sample {
	var samples []Sample
	c.s.each(func(labels map[string]string, v *atomicFloat64) {
		samples = append(samples, Sample{Name: c.s.name, Labels: labels, Value: v.Load()})
	})
	return samples
}

// Histogram tracks the distribution of observed values.
type Histogram struct {
	s      *series[histogramValue]
	bounds []float64
}

type histogramValue struct {
	counts []atomic.Uint64
	sum    atomicFloat64
	count  atomic.Uint64
}

func newHistogram(name, help string, buckets []float64, labelNames []string) *Histogram {
	bounds := append([]float64(nil), buckets...)
	sort.Float64s(bounds)
	if len(bounds) == 0 || !math.IsInf(bounds[len(bounds)-1], 1) {
		bounds = append(bounds, math.Inf(1))
	}
	return &Histogram{
		bounds: bounds,
		s: newSeries(name, help, labelNames, func() *histogramValue {
			return &histogramValue{counts: make([]atomic.Uint64, len(bounds))}
		}),
	}
}

func (h *Histogram) Name() string { return h.s.name }
func (h *Histogram) Help() string { return h.s.help }
func (h *Histogram) Type() MetricType { return MetricTypeHistogram }

// Observe records value in the series selected by labelValues.
func (h *Histogram) Observe(value float64, labelValues ...string) error {
	v, err := h.s.get(labelValues)
	if err != nil {
		return err
	}
	for i, bound := range h.bounds {
		if value <= bound {
			v.counts[i].Add(1)
			break
		}
	}
	v.sum.Add(value)
	v.count.Add(1)
	return nil
}

func (h *Histogram) Collect() []Sample {
	var samples []Sample
	h.s.each(func(labels map[string]string, v *histogramValue) {
		var cumulative uint64
		for i, bound := range h.bounds {
			cumulative += v.counts[i].Load()
			bl := make(map[string]string, len(labels)+1)
			for k, lv := range labels {
				bl[k] = lv
			}
			bl["le"] = formatFloat(bound)
			samples = append(samples, Sample{Name: h.s.name + "_bucket", Labels: bl, Value: float64(cumulative)})
		}
		samples = append(samples,
			Sample{Name: h.s.name + "_sum", Labels: labels, Value: v.sum.Load()},
			Sample{Name: h.s.name + "_count", Labels: labels, Value: float64(v.count.Load())},
		)
	})
	return samples
}

// GaugeFunc exposes a value computed at collection time.
type GaugeFunc struct {
	name string
	help string
	fn   func() float64
}

func (g *GaugeFunc) Name() string { return g.name }
func (g *GaugeFunc) Help() string { return g.help }
func (g *GaugeFunc) Type() MetricType { return MetricTypeGauge }

func (g *GaugeFunc) Collect() []Sample {
	return []Sample{{Name: g.name, Value: g.fn()}}
}

// DefaultBuckets are request duration buckets in seconds. They reach past
// ten seconds because injected query delays are whole seconds.
var DefaultBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30}
