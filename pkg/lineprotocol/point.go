package lineprotocol

import "strings"

// Pair is a single key=value element of a tag set or field set.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered key/value list. Keys are unique; setting an existing
// key replaces its value in place so first-seen order is kept.
type Pairs []Pair

// Tags holds the tag set of a point.
type Tags = Pairs

// Fields holds the field set of a point.
type Fields = Pairs

// Get returns the value stored under key.
func (p Pairs) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Value returns the value stored under key or "" when it is absent.
func (p Pairs) Value(key string) string {
	v, _ := p.Get(key)
	return v
}

// Has reports whether key is present.
func (p Pairs) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the keys in order.
func (p Pairs) Keys() []string {
	keys := make([]string, len(p))
	for i, kv := range p {
		keys[i] = kv.Key
	}
	return keys
}

// Set stores value under key and returns the updated list.
func (p Pairs) Set(key, value string) Pairs {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Pair{Key: key, Value: value})
}

// Point is one parsed line of line protocol.
type Point struct {
	Measurement string
	Tags        Tags
	Fields      Fields
	// Timestamp is the raw third token of the line, empty when absent.
	Timestamp string
}

// HasTimestamp reports whether the line carried a timestamp token.
func (p Point) HasTimestamp() bool {
	return p.Timestamp != ""
}

// Line renders the point back into line protocol.
func (p Point) Line() string {
	var b strings.Builder
	b.WriteString(p.Measurement)
	for _, kv := range p.Tags {
		b.WriteByte(',')
		writePair(&b, kv)
	}
	b.WriteByte(' ')
	for i, kv := range p.Fields {
		if i > 0 {
			b.WriteByte(',')
		}
		writePair(&b, kv)
	}
	if p.HasTimestamp() {
		b.WriteByte(' ')
		b.WriteString(p.Timestamp)
	}
	return b.String()
}

func writePair(b *strings.Builder, kv Pair) {
	b.WriteString(kv.Key)
	b.WriteByte('=')
	b.WriteString(kv.Value)
}
