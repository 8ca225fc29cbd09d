// Package heap implements a binary max-heap whose comparator is learned from
// an operator instead of being fixed in advance.
//
// Two items are ordered by consulting what is already known about them. Every
// decision the operator makes is recorded on the items involved, together
// with everything it implies, so the same question is never asked twice and
// no question is asked whose answer already follows from earlier ones.
//
// ARCHITECTURE:
//
// Learned Relation:
// Each Item carries the set of items known to be lower priority than it and
// the set known to be higher. RecordHigher keeps both sets transitively
// closed, so a lookup is a single map access and a contradiction (a cycle)
// can be rejected before it is written.
//
// Single Comparator:
// Every comparison the heap makes goes through Comparator.IsHigher. It is the
// only code path that consults the Oracle and the only writer of relations.
//
// Array Heap:
// Heap stores items in a resizable array. Capacity doubles on overflow and
// halves when occupancy drops to a quarter, never below the minimum capacity.
// Sifting is iterative.
//
// Oracle Failures:
// The Oracle may block indefinitely and may fail. A failed comparison records
// nothing. The heap keeps all of its items, restores order from recorded
// relations only, and finishes the interrupted work on the next Add or
// Delete.
//
// A Heap is not safe for concurrent use. Callers must serialize access,
// including while an Oracle call is in flight.
package heap
