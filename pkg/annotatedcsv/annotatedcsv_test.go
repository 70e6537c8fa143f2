package annotatedcsv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/influxmock/pkg/lineprotocol"
)

func TestEncodePoints_SinglePoint(t *testing.T) {
	t.Parallel()

	res := lineprotocol.Parse("cpu,host=a value=1 1600000000\n")
	out, err := EncodePoints(res.Points)
	require.NoError(t, err)

	assert.Equal(t,
		"#datatype,string,string,string,string\r\n"+
			",measurement,host,value,timestamp\r\n"+
			",cpu,a,1,1600000000\r\n",
		string(out))
}

func TestEncodePoints_GroupRow(t *testing.T) {
	t.Parallel()

	res := lineprotocol.Parse("cpu,host=a value=1")
	out, err := EncodePoints(res.Points, WithGroupRow())
	require.NoError(t, err)

	lines := strings.Split(string(out), "\r\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "#datatype,string,string,string", lines[0])
	assert.Equal(t, "#group,true,true,false", lines[1])
	assert.Equal(t, ",measurement,host,value", lines[2])
	assert.Equal(t, ",cpu,a,1", lines[3])
	assert.Empty(t, lines[4])
}

func TestEncodePoints_Empty(t *testing.T) {
	t.Parallel()

	out, err := EncodePoints(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFromPoints_UnionOfKeys(t *testing.T) {
	t.Parallel()

	res := lineprotocol.Parse(strings.Join([]string{
		"test,a=1 f=1i",
		"test,b=2 g=2.5 100",
		"test,a=3,b=4 f=3i,g=1",
	}, "\n"))
	tbl := FromPoints(res.Points)

	assert.Equal(t, []string{"measurement", "a", "b", "f", "g", "timestamp"}, tbl.ColumnNames())
	assert.Equal(t, [][]string{
		{"test", "1", "", "1", "", ""},
		{"test", "", "2", "", "2.5", "100"},
		{"test", "3", "4", "3", "1", ""},
	}, tbl.Rows)
	assert.Equal(t, 1, tbl.Column("a"))
	assert.Equal(t, -1, tbl.Column("missing"))
	for _, c := range tbl.Columns {
		assert.Equal(t, DatatypeString, c.Datatype)
	}
}

func TestEncode_RowWidthMismatch(t *testing.T) {
	t.Parallel()

	tbl := Table{
		Columns: []Column{{Name: "a", Datatype: DatatypeString}},
		Rows:    [][]string{{"1", "2"}},
	}
	err := NewEncoder(&bytes.Buffer{}).Encode(tbl)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	payload := strings.Join([]string{
		"test,t1=a,t2=b v=1i,s=\"q\" 1",
		"test,t1=c v=2i 2",
		"other,t3=x w=0.5",
	}, "\n")
	points := lineprotocol.Parse(payload).Points
	out, err := EncodePoints(points, WithGroupRow())
	require.NoError(t, err)

	decoded, err := Decode(bytes.NewReader(out))
	require.NoError(t, err)

	want := FromPoints(points)
	assert.Equal(t, want.ColumnNames(), decoded.ColumnNames())
	require.Len(t, decoded.Rows, len(points))
	for i, p := range points {
		row := decoded.Rows[i]
		assert.Equal(t, p.Measurement, row[decoded.Column("measurement")])
		for _, kv := range p.Tags {
			assert.Equal(t, kv.Value, row[decoded.Column(kv.Key)])
		}
		for _, kv := range p.Fields {
			assert.Equal(t, kv.Value, row[decoded.Column(kv.Key)])
		}
		assert.Equal(t, p.Timestamp, row[decoded.Column("timestamp")])
	}
}

func TestDecode_FixtureStyleTable(t *testing.T) {
	t.Parallel()

	in := "#datatype,string,long,double\n" +
		",result,table,_value\n" +
		",,0,1.4\n" +
		",,1,6.6\n" +
		"\r \n"
	tbl, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"result", "table", "_value"}, tbl.ColumnNames())
	assert.Equal(t, "double", tbl.Columns[2].Datatype)
	assert.Equal(t, [][]string{{"", "0", "1.4"}, {"", "1", "6.6"}}, tbl.Rows)
}

func TestDecode_MissingHeader(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("#datatype,string\n"))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func BenchmarkEncodePoints(b *testing.B) {
	var sb strings.Builder
	for range 1000 {
		sb.WriteString("cpu,host=server01,region=us-west usage=0.64,idle=12i 1556813561098000000\n")
	}
	points := lineprotocol.Parse(sb.String()).Points

	b.ReportAllocs()
	for b.Loop() {
		if _, err := EncodePoints(points); err != nil {
			b.Fatal(err)
		}
	}
}
