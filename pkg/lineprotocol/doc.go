// Package lineprotocol parses the text ingestion format accepted by the
// write endpoints:
//
//	measurement,tag=val,tag=val field=val,field=val [timestamp]
//
// The parser is deliberately lenient. It does not unescape, type or
// validate anything: values are kept as the client sent them, except that
// the integer marker "i" is removed from integer field values. Lines that
// do not contain at least a measurement token and a field token are
// skipped.
package lineprotocol
