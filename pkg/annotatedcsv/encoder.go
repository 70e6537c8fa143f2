package annotatedcsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/getmockd/influxmock/pkg/lineprotocol"
)

// Annotation row markers.
const (
	AnnotationDatatype = "#datatype"
	AnnotationGroup    = "#group"
)

// Option configures an Encoder.
type Option func(*Encoder)

// WithGroupRow adds a "#group" annotation row after "#datatype".
func WithGroupRow() Option {
	return func(e *Encoder) {
		e.groupRow = true
	}
}

// Encoder writes tables as annotated CSV.
type Encoder struct {
	w        *csv.Writer
	groupRow bool
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	e := &Encoder{w: cw}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes t. An empty table produces no output.
func (e *Encoder) Encode(t Table) error {
	if t.Empty() {
		return nil
	}

	n := len(t.Columns)
	datatypes := make([]string, 0, n+1)
	groups := make([]string, 0, n+1)
	names := make([]string, 0, n+1)
	datatypes = append(datatypes, AnnotationDatatype)
	groups = append(groups, AnnotationGroup)
	names = append(names, "")
	for _, c := range t.Columns {
		datatypes = append(datatypes, c.Datatype)
		groups = append(groups, strconv.FormatBool(c.Grouped()))
		names = append(names, c.Name)
	}

	if err := e.w.Write(datatypes); err != nil {
		return fmt.Errorf("writing datatype annotation: %w", err)
	}
	if e.groupRow {
		if err := e.w.Write(groups); err != nil {
			return fmt.Errorf("writing group annotation: %w", err)
		}
	}
	if err := e.w.Write(names); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, n+1)
	for i, row := range t.Rows {
		if len(row) != n {
			return fmt.Errorf("row %d: %d cells for %d columns", i, len(row), n)
		}
		record[0] = ""
		copy(record[1:], row)
		if err := e.w.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	e.w.Flush()
	return e.w.Error()
}

// EncodePoints renders points as an annotated CSV body.
func EncodePoints(points []lineprotocol.Point, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(FromPoints(points)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
