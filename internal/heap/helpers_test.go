package heap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/roach88/todoheap/internal/testutil"
)

// errStop is returned by failing test oracles.
var errStop = errors.New("operator walked away")

// rankOracle answers from a fixed ranking; earlier names are higher priority.
// Every call is recorded so tests can count queries per pair.
type rankOracle struct {
	rank  map[string]int
	calls [][2]string

	// failAt makes the n-th call (1-based) fail. Zero never fails.
	failAt int
}

func newRankOracle(names ...string) *rankOracle {
	o := &rankOracle{rank: make(map[string]int, len(names))}
	for i, n := range names {
		o.rank[n] = i
	}
	return o
}

func (o *rankOracle) Choose(_ context.Context, a, b *Item) (*Item, error) {
	o.calls = append(o.calls, [2]string{a.name, b.name})
	if o.failAt > 0 && len(o.calls) == o.failAt {
		return nil, errStop
	}
	ra, okA := o.rank[a.name]
	rb, okB := o.rank[b.name]
	if !okA || !okB {
		return nil, fmt.Errorf("unranked pair %q/%q", a.name, b.name)
	}
	if ra < rb {
		return a, nil
	}
	return b, nil
}

// repeatedPairs returns every unordered pair that was asked more than once.
func (o *rankOracle) repeatedPairs() []string {
	seen := make(map[string]int)
	var repeated []string
	for _, c := range o.calls {
		x, y := c[0], c[1]
		if y < x {
			x, y = y, x
		}
		key := x + "|" + y
		seen[key]++
		if seen[key] == 2 {
			repeated = append(repeated, key)
		}
	}
	return repeated
}

// refuseOracle fails every call; used where no query is expected.
type refuseOracle struct{ calls int }

func (o *refuseOracle) Choose(_ context.Context, a, b *Item) (*Item, error) {
	o.calls++
	return nil, fmt.Errorf("unexpected query %q vs %q", a.name, b.name)
}

// newTestHeap creates a heap with deterministic identities.
func newTestHeap(t *testing.T, oracle Oracle, opts ...Option) *Heap {
	t.Helper()
	opts = append([]Option{WithIDGenerator(testutil.NewSequentialIDs())}, opts...)
	return New(oracle, opts...)
}

// addAll adds names in order and fails the test on any error.
func addAll(t *testing.T, h *Heap, names ...string) {
	t.Helper()
	for _, n := range names {
		if _, err := h.Add(context.Background(), n); err != nil {
			t.Fatalf("Add(%q) failed: %v", n, err)
		}
	}
}

// drain pops every item and returns the names in pop order.
func drain(t *testing.T, h *Heap) []string {
	t.Helper()
	var out []string
	for !h.IsEmpty() {
		it, err := h.Pop(context.Background())
		if err != nil {
			t.Fatalf("Pop() failed: %v", err)
		}
		out = append(out, it.Name())
		if err := h.Verify(); err != nil {
			t.Fatalf("Verify() after Pop failed: %v", err)
		}
	}
	return out
}

// items creates unrelated items with sequential identities.
func items(names ...string) []*Item {
	out := make([]*Item, len(names))
	for i, n := range names {
		out[i] = newItem(testutil.ID(uint64(i+1)), n)
	}
	return out
}
