// Package fixtures holds the canned query responses served for queries of
// the form "testquery-<name>".
package fixtures

import (
	"net/http"
	"sort"
	"strings"
)

// QueryPrefix marks a query text as a fixture lookup.
const QueryPrefix = "testquery-"

// Fixture is a named canned response.
type Fixture struct {
	Name   string
	Body   string
	Status int
}

// Catalog maps fixture names to bodies.
type Catalog struct {
	bodies map[string]string
}

// New creates a catalog from name/body pairs.
func New(bodies map[string]string) *Catalog {
	c := &Catalog{bodies: make(map[string]string, len(bodies))}
	for name, body := range bodies {
		c.bodies[name] = body
	}
	return c
}

// Default returns the catalog of annotated CSV samples and error bodies
// used by client query tests.
func Default() *Catalog {
	return New(defaultBodies)
}

// StatusFor returns the status a fixture with the given name is served
// with: 400 for names ending in "error", otherwise 200.
func StatusFor(name string) int {
	if strings.HasSuffix(name, "error") {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

// ParseQuery extracts the fixture name from a query text.
func ParseQuery(query string) (string, bool) {
	return strings.CutPrefix(query, QueryPrefix)
}

// Lookup returns the fixture with the given name. An unknown name still
// yields a Fixture with an empty body and the name-derived status, which
// is what gets served; the boolean reports whether the name was known.
func (c *Catalog) Lookup(name string) (Fixture, bool) {
	body, ok := c.bodies[name]
	return Fixture{Name: name, Body: body, Status: StatusFor(name)}, ok
}

// Names returns the fixture names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.bodies))
	for name := range c.bodies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
