package oracle

import (
	"bytes"
	"context"

	"github.com/roach88/todoheap/internal/heap"
)

// Query is one question put to an oracle and its outcome.
type Query struct {
	A, B     string
	AID, BID heap.ItemID

	// Winner is the name of the chosen item. Empty when the oracle failed.
	Winner string
	Err    error
}

// Recorder wraps an oracle and records every question asked of it.
type Recorder struct {
	next    heap.Oracle
	queries []Query

	// OnQuery, when set, is called after each question is answered.
	OnQuery func(Query)
}

// NewRecorder creates a recorder around next.
func NewRecorder(next heap.Oracle) *Recorder {
	return &Recorder{next: next}
}

// Choose implements heap.Oracle.
func (r *Recorder) Choose(ctx context.Context, a, b *heap.Item) (*heap.Item, error) {
	winner, err := r.next.Choose(ctx, a, b)

	q := Query{A: a.Name(), B: b.Name(), AID: a.ID(), BID: b.ID(), Err: err}
	if err == nil && winner != nil {
		q.Winner = winner.Name()
	}
	r.queries = append(r.queries, q)
	if r.OnQuery != nil {
		r.OnQuery(q)
	}
	return winner, err
}

// Count returns the number of questions asked.
func (r *Recorder) Count() int {
	return len(r.queries)
}

// Queries returns the recorded questions in the order they were asked.
func (r *Recorder) Queries() []Query {
	out := make([]Query, len(r.queries))
	copy(out, r.queries)
	return out
}

// Asked reports whether the pair was asked about, in either order.
func (r *Recorder) Asked(a, b heap.ItemID) bool {
	key := pairKey(a, b)
	for _, q := range r.queries {
		if pairKey(q.AID, q.BID) == key {
			return true
		}
	}
	return false
}

// Repeated returns the questions whose pair had already been asked about
// successfully. Questions that failed or broke the oracle contract do not
// count as asked.
func (r *Recorder) Repeated() []Query {
	seen := make(map[[2]heap.ItemID]bool)
	var out []Query
	for _, q := range r.queries {
		key := pairKey(q.AID, q.BID)
		if seen[key] {
			out = append(out, q)
		}
		if q.Err == nil && q.Winner != "" {
			seen[key] = true
		}
	}
	return out
}

// Reset forgets all recorded questions.
func (r *Recorder) Reset() {
	r.queries = nil
}

func pairKey(a, b heap.ItemID) [2]heap.ItemID {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return [2]heap.ItemID{a, b}
}
