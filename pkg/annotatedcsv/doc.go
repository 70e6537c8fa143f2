// Package annotatedcsv renders stored points in the annotated CSV dialect
// returned by the query endpoint.
//
// A table is written as an annotation row "#datatype,...", an optional
// "#group,..." row, the column-name row and one row per record. Every row
// starts with an empty annotation column and ends with CRLF:
//
//	#datatype,string,string,string,string
//	,measurement,host,value,timestamp
//	,cpu,a,1,1600000000
//
// Columns are derived from the points by FromPoints: the measurement, the
// union of tag keys, the union of field keys and, when any point carries
// one, the timestamp. Values are emitted verbatim and typed as string.
package annotatedcsv
