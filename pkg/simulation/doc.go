// Package simulation holds the mutable model behind the mock: stored
// points, one-shot query effects, the sticky write error, the bucket
// registry and the fixed organization.
//
// Writes are fed through ApplyWriteV2 or ApplyWriteV1. When the first
// point of a write carries a "direction" tag, its value selects an entry of
// a Directive table that reprograms the State. The directive point is never
// stored. Subsequent requests observe the new state until a one-shot effect
// is consumed by a query or the sticky error is cleared with
// "permanent-unset".
package simulation
