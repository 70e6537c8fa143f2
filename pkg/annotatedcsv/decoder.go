package annotatedcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoHeader is returned by Decode when the input has annotation or data
// rows but no column-name row.
var ErrNoHeader = errors.New("annotatedcsv: missing header row")

// Decode reads a single annotated CSV table. Annotation rows are used for
// column datatypes; column kinds are not recoverable and are left zero.
// Blank separator lines are skipped.
func Decode(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		t         Table
		datatypes []string
		header    bool
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("annotatedcsv: %w", err)
		}
		if blank(rec) {
			continue
		}
		switch {
		case rec[0] == AnnotationDatatype:
			datatypes = rec[1:]
		case strings.HasPrefix(rec[0], "#"):
		case !header:
			header = true
			for i, name := range rec[1:] {
				c := Column{Name: name}
				if i < len(datatypes) {
					c.Datatype = datatypes[i]
				}
				t.Columns = append(t.Columns, c)
			}
		default:
			t.Rows = append(t.Rows, rec[1:])
		}
	}
	if !header && datatypes != nil {
		return Table{}, ErrNoHeader
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
