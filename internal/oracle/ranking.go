package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/todoheap/internal/heap"
)

// ErrUnranked is returned by Ranking when asked about a name it does not
// know.
var ErrUnranked = errors.New("name is not ranked")

// Ranking answers from a fixed order of names. Earlier names are higher
// priority. Items with the same name are indistinguishable to a Ranking.
type Ranking struct {
	rank map[string]int
}

// NewRanking creates a ranking from names, highest priority first.
// If a name repeats, its first position counts.
func NewRanking(names ...string) *Ranking {
	rank := make(map[string]int, len(names))
	for i, n := range names {
		if _, ok := rank[n]; !ok {
			rank[n] = i
		}
	}
	return &Ranking{rank: rank}
}

// Choose implements heap.Oracle.
func (r *Ranking) Choose(_ context.Context, a, b *heap.Item) (*heap.Item, error) {
	ra, ok := r.rank[a.Name()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnranked, a.Name())
	}
	rb, ok := r.rank[b.Name()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnranked, b.Name())
	}
	if rb < ra {
		return b, nil
	}
	return a, nil
}

// Rank returns the position of name, or false if it is not ranked.
func (r *Ranking) Rank(name string) (int, bool) {
	i, ok := r.rank[name]
	return i, ok
}
