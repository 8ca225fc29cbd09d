package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/todoheap/internal/heap"
	"github.com/roach88/todoheap/internal/oracle"
	"github.com/roach88/todoheap/internal/testutil"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	// Header with assertion type
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Full trace for context
	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		buf.WriteString(formatTrace(e.Trace))
	}

	return buf.String()
}

// AssertionContext gives assertions access to the scenario's final state.
type AssertionContext struct {
	Ctx      context.Context
	Heap     *heap.Heap
	Oracle   heap.Oracle // unrecorded oracle, used by drain_order
	Recorder *oracle.Recorder
	IDs      *testutil.SequentialIDs
}

// EvaluateAssertions checks each assertion against the result and the final
// heap and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertQueries:
			err = assertNumber(result.Trace, assertion, actx.Recorder.Count())
		case AssertCount:
			err = assertNumber(result.Trace, assertion, actx.Heap.Len())
		case AssertCapacity:
			err = assertNumber(result.Trace, assertion, actx.Heap.Cap())
		case AssertPeek:
			err = assertPeek(result.Trace, assertion, actx.Heap)
		case AssertDrainOrder:
			err = assertDrainOrder(actx, assertion)
		case AssertNeverAsked:
			err = assertNeverAsked(result.Trace, assertion, actx.Recorder)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// assertNumber checks a counted quantity (queries, count, capacity).
func assertNumber(trace []TraceEvent, assertion Assertion, actual int) error {
	if assertion.Value == nil {
		return fmt.Errorf("%s: value is required", assertion.Type)
	}
	if *assertion.Value == actual {
		return nil
	}
	return &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("%d", *assertion.Value),
		Actual:   fmt.Sprintf("%d", actual),
		Trace:    trace,
	}
}

// assertPeek checks the top item.
func assertPeek(trace []TraceEvent, assertion Assertion, h *heap.Heap) error {
	top, ok := h.Peek()
	if ok && top == assertion.Item {
		return nil
	}
	if !ok {
		top = "empty heap"
	}
	return &AssertionError{
		Type:     AssertPeek,
		Expected: assertion.Item,
		Actual:   top,
		Trace:    trace,
	}
}

// assertDrainOrder deletes every item from a copy of the heap and compares
// the order. The copy asks the oracle directly, so its questions do not
// appear in the trace or the query count.
func assertDrainOrder(actx *AssertionContext, assertion Assertion) error {
	cp, err := heap.Restore(actx.Oracle, actx.Heap.Snapshot(), heap.WithIDGenerator(actx.IDs))
	if err != nil {
		return fmt.Errorf("drain_order: copy heap: %w", err)
	}

	order := []string{}
	for !cp.IsEmpty() {
		top, err := cp.Pop(actx.Ctx)
		if top != nil {
			order = append(order, top.Name())
		}
		if err != nil {
			return &AssertionError{
				Type:     AssertDrainOrder,
				Expected: fmt.Sprintf("%v", assertion.Order),
				Actual:   fmt.Sprintf("%v, then error: %v", order, err),
			}
		}
	}

	if slices.Equal(order, assertion.Order) {
		return nil
	}
	return &AssertionError{
		Type:     AssertDrainOrder,
		Expected: fmt.Sprintf("%v", assertion.Order),
		Actual:   fmt.Sprintf("%v", order),
	}
}

// assertNeverAsked checks that no question compared the two named items.
func assertNeverAsked(trace []TraceEvent, assertion Assertion, rec *oracle.Recorder) error {
	if len(assertion.Pair) != 2 {
		return fmt.Errorf("never_asked: pair must name exactly two items")
	}
	x, y := assertion.Pair[0], assertion.Pair[1]
	for _, q := range rec.Queries() {
		if (q.A == x && q.B == y) || (q.A == y && q.B == x) {
			return &AssertionError{
				Type:     AssertNeverAsked,
				Expected: fmt.Sprintf("%q vs %q never asked", x, y),
				Actual:   fmt.Sprintf("asked %q vs %q", q.A, q.B),
				Trace:    trace,
			}
		}
	}
	return nil
}
