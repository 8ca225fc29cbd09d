// Package harness runs todoheap scenarios: scripted sequences of heap
// operations against a deterministic oracle, checked by assertions and
// golden traces.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	min_capacity: 2
//	oracle:
//	  ranking: [ship, review, lunch]   # or answers: [review, ship, ...]
//	steps:
//	  - add: lunch
//	  - add: ship
//	  - peek: ship
//	  - add: review
//	  - delete: true
//	  - reload: true
//	assertions:
//	  - type: queries
//	    value: 3
//	  - type: drain_order
//	    order: [review, lunch]
//
// A step may carry expect_error (oracle_contract, oracle_failed or
// invariant_violation) when it is meant to fail.
//
// A ranking oracle answers from a fixed order, highest first. An answers
// oracle replays one winner name per question; an answer naming neither
// item breaks the oracle contract and running out of answers fails the
// oracle.
//
// # Assertion Types
//
//   - queries: the oracle was asked exactly value questions
//   - peek: item is at the top of the heap
//   - count: the heap holds value items
//   - capacity: the backing array has value slots
//   - drain_order: deleting everything yields order (checked on a copy)
//   - never_asked: the two named items were never compared by the oracle
//
// # Built-in Checks
//
// Every scenario also fails if the oracle is asked about the same pair twice
// or if the heap fails Verify after any step.
//
// # Deterministic Testing
//
// Item identities come from testutil.SequentialIDs and trace sequence
// numbers from testutil.TraceClock, so the same scenario always
// produces a byte-identical trace for golden comparison. Reload steps go
// through an in-memory SQLite store.
package harness
