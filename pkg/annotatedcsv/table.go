package annotatedcsv

import "github.com/getmockd/influxmock/pkg/lineprotocol"

// DatatypeString is the only datatype emitted for stored points.
const DatatypeString = "string"

// Kind tells which part of a point a column is read from.
type Kind int

const (
	KindMeasurement Kind = iota
	KindTag
	KindField
	KindTimestamp
)

// Column describes one CSV column.
type Column struct {
	Name     string
	Datatype string
	Kind     Kind
}

// Grouped reports whether the column belongs to the group key.
func (c Column) Grouped() bool {
	return c.Kind == KindMeasurement || c.Kind == KindTag
}

// Table is a set of rows sharing a column layout.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the index of the first column with the given name, or -1.
func (t Table) Column(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// FromPoints builds a table holding one row per point. Cells for tags or
// fields a point does not carry are left empty.
func FromPoints(points []lineprotocol.Point) Table {
	if len(points) == 0 {
		return Table{}
	}

	cols := []Column{{Name: "measurement", Datatype: DatatypeString, Kind: KindMeasurement}}
	cols = appendKeys(cols, points, KindTag)
	cols = appendKeys(cols, points, KindField)
	for _, p := range points {
		if p.HasTimestamp() {
			cols = append(cols, Column{Name: "timestamp", Datatype: DatatypeString, Kind: KindTimestamp})
			break
		}
	}

	t := Table{Columns: cols, Rows: make([][]string, 0, len(points))}
	for _, p := range points {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = cell(p, c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func appendKeys(cols []Column, points []lineprotocol.Point, kind Kind) []Column {
	seen := make(map[string]bool)
	for _, p := range points {
		pairs := p.Fields
		if kind == KindTag {
			pairs = p.Tags
		}
		for _, key := range pairs.Keys() {
			if seen[key] {
				continue
			}
			seen[key] = true
			cols = append(cols, Column{Name: key, Datatype: DatatypeString, Kind: kind})
		}
	}
	return cols
}

func cell(p lineprotocol.Point, c Column) string {
	switch c.Kind {
	case KindMeasurement:
		return p.Measurement
	case KindTag:
		return p.Tags.Value(c.Name)
	case KindField:
		return p.Fields.Value(c.Name)
	case KindTimestamp:
		return p.Timestamp
	}
	return ""
}
