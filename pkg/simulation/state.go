package simulation

import (
	"sync"
	"time"

	"github.com/getmockd/influxmock/pkg/lineprotocol"
)

// State is the mutable model of one running server instance.
//
// The engine serializes requests, so a State is never mutated by two
// requests at once; the mutex only protects reads made from outside the
// request path (management and metrics).
type State struct {
	mu sync.Mutex

	org     Org
	buckets *Buckets

	points        []lineprotocol.Point
	chunked       bool
	delay         time.Duration
	permanentCode int
	lastUserAgent string
}

// NewState creates an empty state for org. defaultBucket, when not empty,
// is registered as a bucket that always exists.
func NewState(org Org, defaultBucket string) *State {
	return &State{
		org:     org,
		buckets: NewBuckets(org.ID, defaultBucket),
	}
}

// Org returns the fixed organization.
func (s *State) Org() Org {
	return s.org
}

// Buckets returns the bucket registry.
func (s *State) Buckets() *Buckets {
	return s.buckets
}

// Reset restores the initial state: no points, no pending effects, no
// sticky error and only the default bucket.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = nil
	s.chunked = false
	s.delay = 0
	s.permanentCode = 0
	s.lastUserAgent = ""
	s.buckets.Clear()
}

// DeleteAll removes all stored points and buckets.
func (s *State) DeleteAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteAll()
}

func (s *State) deleteAll() {
	s.points = nil
	s.buckets.Clear()
}

// Points returns a copy of the stored points.
func (s *State) Points() []lineprotocol.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]lineprotocol.Point, len(s.points))
	copy(out, s.points)
	return out
}

// PointCount returns the number of stored points.
func (s *State) PointCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// SetUserAgent records the client identifier of a health probe.
func (s *State) SetUserAgent(ua string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUserAgent = ua
}

// UserAgent returns the last recorded client identifier.
func (s *State) UserAgent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUserAgent
}

// PermanentCode returns the sticky write error status, 0 when unset.
func (s *State) PermanentCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permanentCode
}

// QueryEffects are the one-shot settings applied to a query response.
type QueryEffects struct {
	Delay   time.Duration
	Chunked bool
}

// PendingEffects returns the effects the next query will consume without
// consuming them.
func (s *State) PendingEffects() QueryEffects {
	s.mu.Lock()
	defer s.mu.Unlock()
	return QueryEffects{Delay: s.delay, Chunked: s.chunked}
}

// TakeQueryEffects returns the pending effects and clears them.
func (s *State) TakeQueryEffects() QueryEffects {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := QueryEffects{Delay: s.delay, Chunked: s.chunked}
	s.delay = 0
	s.chunked = false
	return e
}
