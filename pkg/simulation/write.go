package simulation

import (
	"net/http"

	"github.com/getmockd/influxmock/pkg/lineprotocol"
)

// PermanentErrorBody is sent while the sticky write error is set.
const PermanentErrorBody = "Internal server error"

// WriteResult describes what a write did to the state.
type WriteResult struct {
	Outcome
	// Directive is the direction tag value of the first point, if any.
	Directive string
	// Known reports whether Directive matched an entry of the table.
	Known bool
	// Stored is the number of points appended to the store.
	Stored int
	// Permanent is set when the write was refused by the sticky error.
	Permanent bool
}

// ApplyWriteV2 applies a v2 write. The pending chunked flag is cleared
// first, so only a query directly following a "chunked" write is chunked.
//
// While a sticky error is set, the write is refused with that status and
// nothing is stored, unless its first point is the "permanent-unset"
// directive.
func (s *State) ApplyWriteV2(res lineprotocol.Result) WriteResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunked = false
	if s.permanentCode != 0 {
		if directive(res) != DirectivePermanentUnset {
			return WriteResult{
				Outcome:   Outcome{Status: s.permanentCode, Body: PermanentErrorBody},
				Directive: directive(res),
				Permanent: true,
			}
		}
	}
	return s.apply(V2Directives, res)
}

// ApplyWriteV1 applies a v1 write. Only the v1 directive table is
// consulted and the sticky error does not apply.
func (s *State) ApplyWriteV1(res lineprotocol.Result) WriteResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(V1Directives, res)
}

func (s *State) apply(table DirectiveTable, res lineprotocol.Result) WriteResult {
	if res.Empty() {
		return WriteResult{}
	}

	var result WriteResult
	points := res.Points
	if name, ok := points[0].Tags.Get(DirectionTag); ok {
		result.Directive = name
		if d, known := table[name]; known {
			result.Known = true
			result.Outcome = d(s, points[0].Tags)
		}
		points = points[1:]
	}
	if result.Discard {
		return result
	}

	s.points = append(s.points, points...)
	result.Stored = len(points)
	return result
}

func directive(res lineprotocol.Result) string {
	if res.Empty() {
		return ""
	}
	return res.Points[0].Tags.Value(DirectionTag)
}

// Succeeded reports whether the write is answered with a 2xx status.
func (r WriteResult) Succeeded() bool {
	code := r.StatusCode()
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
