// Package id generates the identifiers handed out by the mock.
//
// Buckets and organizations in the emulated API are addressed by 16
// character lowercase hex strings. Short produces one from crypto/rand and
// IsShort checks that a caller-supplied id has that shape before it is
// looked up.
package id
