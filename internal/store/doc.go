// Package store provides SQLite-backed storage for named heaps.
//
// A heap is stored as three kinds of rows:
//   - Heaps: name and minimum capacity
//   - Items: identity, display name and array position of each live item
//   - Relations: one row per (higher, lower) pair of live items
//
// Only relations between live items are stored. Facts learned about items
// that were deleted have already been propagated to the live items they
// connect, so nothing the operator decided is lost.
//
// # Critical Patterns
//
// Whole-heap saves:
//   - SaveHeap replaces every item and relation of a heap in one transaction
//   - A reader never sees a half-written heap
//
// Deterministic reads:
//   - Items are read ORDER BY position ASC
//   - Relations are read ORDER BY higher_id, lower_id COLLATE BINARY, which
//     matches the byte order heap.Snapshot uses
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity (and cascading deletes)
package store
