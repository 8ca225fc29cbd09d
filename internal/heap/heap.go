package heap

import (
	"context"
	"io"
	"log/slog"
)

// DefaultMinCapacity is the initial and minimum size of the backing array.
const DefaultMinCapacity = 8

// Heap is a binary max-heap of Items ordered by a learned comparator.
//
// For every index i with 0 < i < Len(), the item at i is never known to be
// higher priority than the item at (i-1)/2. The root is therefore maximal
// among everything it has been compared with, directly or transitively.
//
// Heap is not safe for concurrent use.
type Heap struct {
	items  []*Item // backing array; len(items) is the capacity
	count  int
	minCap int

	cmp    *Comparator
	ids    IDGenerator
	logger *slog.Logger

	// unsettled is set when a sift was interrupted by an oracle failure.
	// Some parent/child pairs may then be undecided; the next Add or Delete
	// decides them before doing anything else.
	unsettled bool
}

// Option configures a Heap.
type Option func(*Heap)

// WithMinCapacity sets the initial and minimum capacity. Values below 1 are
// treated as 1.
func WithMinCapacity(n int) Option {
	return func(h *Heap) {
		if n < 1 {
			n = 1
		}
		h.minCap = n
	}
}

// WithLogger sets the logger used for oracle queries, resizes and faults.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Heap) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithIDGenerator overrides the identity generator (for testing).
// If not set, UUIDv7Generator is used.
func WithIDGenerator(g IDGenerator) Option {
	return func(h *Heap) {
		if g != nil {
			h.ids = g
		}
	}
}

// New creates an empty heap that consults oracle for undecided comparisons.
func New(oracle Oracle, opts ...Option) *Heap {
	h := &Heap{
		minCap: DefaultMinCapacity,
		ids:    UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.items = make([]*Item, h.minCap)
	h.cmp = NewComparator(oracle, h.logger)
	return h
}

// Add creates an item called name and inserts it.
//
// The oracle may be consulted while the item sifts up. If it fails, the item
// stays in the heap, the returned error wraps the failure and the remaining
// work is finished by the next Add or Delete.
func (h *Heap) Add(ctx context.Context, name string) (*Item, error) {
	if err := h.settlePending(ctx); err != nil {
		return nil, err
	}

	item := newItem(h.ids.NewID(), name)
	if h.count == len(h.items) {
		h.resize(len(h.items) * 2)
	}
	h.items[h.count] = item
	h.count++

	if err := h.siftUp(ctx, h.count-1); err != nil {
		h.unsettled = true
		return item, err
	}
	return item, nil
}

// Peek returns the name of the highest priority item.
// Returns ("", false) if the heap is empty. Never consults the oracle.
func (h *Heap) Peek() (string, bool) {
	if h.count == 0 {
		return "", false
	}
	return h.items[0].name, true
}

// PeekItem returns the highest priority item, or nil if the heap is empty.
func (h *Heap) PeekItem() *Item {
	if h.count == 0 {
		return nil
	}
	return h.items[0]
}

// Delete removes the highest priority item. It is a no-op on an empty heap.
func (h *Heap) Delete(ctx context.Context) error {
	_, err := h.Pop(ctx)
	return err
}

// Pop removes and returns the highest priority item.
// Returns (nil, nil) if the heap is empty.
//
// If the oracle fails while the replacement root sifts down, the removed item
// is still returned along with the error.
func (h *Heap) Pop(ctx context.Context) (*Item, error) {
	if h.count == 0 {
		return nil, nil
	}
	if err := h.settlePending(ctx); err != nil {
		return nil, err
	}

	top := h.items[0]
	last := h.count - 1
	h.items[0] = h.items[last]
	h.items[last] = nil
	h.count--

	if h.count <= len(h.items)/4 && len(h.items)/2 >= h.minCap {
		h.resize(len(h.items) / 2)
	}

	if err := h.siftDown(ctx, 0); err != nil {
		return top, err
	}
	return top, nil
}

// IsEmpty reports whether the heap holds no items.
func (h *Heap) IsEmpty() bool {
	return h.count == 0
}

// Len returns the number of items in the heap.
func (h *Heap) Len() int {
	return h.count
}

// Cap returns the capacity of the backing array.
func (h *Heap) Cap() int {
	return len(h.items)
}

// MinCapacity returns the capacity the heap never shrinks below.
func (h *Heap) MinCapacity() int {
	return h.minCap
}

// Queries returns how many times the oracle has been consulted.
func (h *Heap) Queries() int {
	return h.cmp.Queries()
}

// Items returns the live items in array order. Index 0 is the root and the
// children of index i are at 2i+1 and 2i+2.
func (h *Heap) Items() []*Item {
	out := make([]*Item, h.count)
	copy(out, h.items[:h.count])
	return out
}

// Names returns the names of the live items in array order.
func (h *Heap) Names() []string {
	names := make([]string, h.count)
	for i := 0; i < h.count; i++ {
		names[i] = h.items[i].name
	}
	return names
}

// Verify checks the heap against its invariants using recorded relations
// only: no live pair is related in both directions, no item is known to be
// higher than its parent, and capacity is within bounds.
func (h *Heap) Verify() error {
	if len(h.items) < h.minCap {
		return newInvariantError(nil, nil, "capacity %d is below minimum %d", len(h.items), h.minCap)
	}
	if h.count > len(h.items) {
		return newInvariantError(nil, nil, "count %d exceeds capacity %d", h.count, len(h.items))
	}
	for i := 0; i < h.count; i++ {
		for j := i + 1; j < h.count; j++ {
			if _, err := KnownRelation(h.items[i], h.items[j]); err != nil {
				return err
			}
		}
	}
	for i := 1; i < h.count; i++ {
		p := parent(i)
		if h.items[i].Dominates(h.items[p]) {
			return newInvariantError(h.items[i], h.items[p],
				"item at index %d is higher priority than its parent at index %d", i, p)
		}
	}
	return nil
}

// settlePending decides every parent/child pair left undecided by an earlier
// oracle failure. It rebuilds order bottom-up, asking only about pairs the
// recorded relation cannot answer.
func (h *Heap) settlePending(ctx context.Context) error {
	if !h.unsettled {
		return nil
	}
	h.logger.Debug("finishing interrupted reordering", "count", h.count)
	for i := parent(h.count - 1); i >= 0; i-- {
		if err := h.siftDown(ctx, i); err != nil {
			return err
		}
	}
	h.unsettled = false
	return nil
}

// siftUp moves the item at i towards the root while it is higher priority
// than its parent.
func (h *Heap) siftUp(ctx context.Context, i int) error {
	for i > 0 {
		p := parent(i)
		higher, err := h.cmp.IsHigher(ctx, h.items[i], h.items[p])
		if err != nil {
			return err
		}
		if !higher {
			return nil
		}
		h.swap(i, p)
		i = p
	}
	return nil
}

// siftDown moves the item at i away from the root while one of its children
// is higher priority. If a comparison fails, order below i is restored from
// recorded relations and the heap is marked unsettled.
func (h *Heap) siftDown(ctx context.Context, i int) error {
	for {
		next, err := h.higherChild(ctx, i)
		if err != nil {
			h.settleKnown(i)
			h.unsettled = true
			return err
		}
		if next < 0 {
			return nil
		}
		h.swap(i, next)
		i = next
	}
}

// higherChild returns the index of the child the item at i must swap with,
// or -1 if it has no higher priority child.
//
// With two children, the child not already known to be the lower of the pair
// is compared with the item first. The sibling is then only compared when
// the recorded relation does not already settle it.
func (h *Heap) higherChild(ctx context.Context, i int) (int, error) {
	l := left(i)
	if l >= h.count {
		return -1, nil
	}
	r := right(i)
	if r >= h.count {
		higher, err := h.cmp.IsHigher(ctx, h.items[l], h.items[i])
		if err != nil || !higher {
			return -1, err
		}
		return l, nil
	}

	first, second := l, r
	rel, err := h.cmp.Known(h.items[l], h.items[r])
	if err != nil {
		return -1, err
	}
	if rel == BHigher {
		first, second = r, l
	}

	higher, err := h.cmp.IsHigher(ctx, h.items[first], h.items[i])
	if err != nil {
		return -1, err
	}
	if higher {
		secondHigher, err := h.cmp.IsHigher(ctx, h.items[second], h.items[first])
		if err != nil {
			return -1, err
		}
		if secondHigher {
			return second, nil
		}
		return first, nil
	}

	higher, err = h.cmp.IsHigher(ctx, h.items[second], h.items[i])
	if err != nil || !higher {
		return -1, err
	}
	return second, nil
}

// settleKnown sifts the item at i down using recorded relations only.
func (h *Heap) settleKnown(i int) {
	for {
		best := i
		for _, c := range []int{left(i), right(i)} {
			if c < h.count && h.items[c].Dominates(h.items[best]) {
				best = c
			}
		}
		if best == i {
			return
		}
		h.swap(i, best)
		i = best
	}
}

// resize changes the capacity of the backing array without reordering.
func (h *Heap) resize(n int) {
	h.logger.Debug("heap resized", "from", len(h.items), "to", n, "count", h.count)
	items := make([]*Item, n)
	copy(items, h.items[:h.count])
	h.items = items
}

func (h *Heap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

// Index of parent node in array
func parent(i int) int { return (i - 1) / 2 }

// Index of left child node in array
func left(i int) int { return 2*i + 1 }

// Index of right child node in array
func right(i int) int { return 2*i + 2 }
