package lineprotocol

import (
	"strconv"
	"strings"
)

// Result is the outcome of parsing a write payload.
//
// Points holds every line that could be read as a point, in payload order.
// When no line qualified, Points is empty and Raw carries the payload
// untouched so callers can tell "no points" apart from "not point data".
type Result struct {
	Points []Point
	Raw    string
}

// Empty reports whether no point was parsed.
func (r Result) Empty() bool {
	return len(r.Points) == 0
}

// Parse splits payload into lines and parses each one.
func Parse(payload string) Result {
	var points []Point
	for _, line := range strings.Split(payload, "\n") {
		if p, ok := ParseLine(line); ok {
			points = append(points, p)
		}
	}
	if len(points) == 0 {
		return Result{Raw: payload}
	}
	return Result{Points: points}
}

// ParseLine parses a single line. It returns false when the line has fewer
// than two space separated tokens.
func ParseLine(line string) (Point, bool) {
	line = strings.TrimSuffix(line, "\r")
	tokens := strings.Split(line, " ")
	if len(tokens) < 2 {
		return Point{}, false
	}

	segments := strings.Split(tokens[0], ",")
	p := Point{Measurement: segments[0]}
	for _, seg := range segments[1:] {
		k, v, _ := strings.Cut(seg, "=")
		p.Tags = p.Tags.Set(k, v)
	}
	for _, seg := range strings.Split(tokens[1], ",") {
		k, v, _ := strings.Cut(seg, "=")
		p.Fields = p.Fields.Set(k, trimIntegerMarker(v))
	}
	if len(tokens) > 2 {
		p.Timestamp = tokens[2]
	}
	return p, true
}

// trimIntegerMarker removes the trailing "i" of an integer field value.
// Anything else, including strings that merely end in "i", is untouched.
func trimIntegerMarker(v string) string {
	n, ok := strings.CutSuffix(v, "i")
	if !ok || n == "" {
		return v
	}
	if _, err := strconv.ParseInt(n, 10, 64); err != nil {
		if _, err := strconv.ParseUint(n, 10, 64); err != nil {
			return v
		}
	}
	return n
}
