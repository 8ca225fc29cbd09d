package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/todoheap/internal/heap"
)

// ErrScriptExhausted is returned when a Script is asked more questions than
// it has answers.
var ErrScriptExhausted = errors.New("script has no answers left")

// Script replays a fixed list of answers. Each answer is the name of the
// winner of the next question.
//
// An answer naming neither item is returned as a nil winner, which the heap
// reports as an oracle contract violation.
type Script struct {
	answers []string
	next    int
}

// NewScript creates a script that gives answers in order.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// Choose implements heap.Oracle.
func (s *Script) Choose(_ context.Context, a, b *heap.Item) (*heap.Item, error) {
	if s.next >= len(s.answers) {
		return nil, fmt.Errorf("%w: asked %q vs %q", ErrScriptExhausted, a.Name(), b.Name())
	}
	answer := s.answers[s.next]
	s.next++

	switch answer {
	case a.Name():
		return a, nil
	case b.Name():
		return b, nil
	}
	return nil, nil
}

// Remaining returns how many answers have not been used.
func (s *Script) Remaining() int {
	return len(s.answers) - s.next
}
