// Package oracle provides the heap.Oracle implementations used by todoheap.
//
// ARCHITECTURE:
//
// Prompt:
// The interactive oracle. It shows both items to the operator and reads a
// choice from the terminal. It is the only oracle that blocks on a person.
//
// Ranking and Script:
// Deterministic oracles for scenarios and tests. Ranking answers from a fixed
// order of names. Script replays a list of answers, one per question, and can
// return answers that name neither item so contract handling can be tested.
//
// Recorder:
// Wraps any oracle and keeps the questions asked, in order, with their
// answers. The harness uses it to prove that no pair was asked twice.
package oracle
