package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/todoheap/internal/heap"
	"github.com/roach88/todoheap/internal/oracle"
	"github.com/roach88/todoheap/internal/store"
)

// session is a stored heap loaded for a command.
type session struct {
	opts  *RootOptions
	store *store.Store
	name  string
	heap  *heap.Heap
	dirty bool
}

// openSession loads heap name from st. Questions the heap needs answered go
// to o.
func openSession(ctx context.Context, opts *RootOptions, st *store.Store, name string, o heap.Oracle) (*session, error) {
	name, err := normalizeHeapName(name)
	if err != nil {
		return nil, err
	}

	snap, err := st.LoadHeap(ctx, name)
	if errors.Is(err, store.ErrHeapNotFound) {
		return nil, NewExitError(ExitCommandError, CodeHeapNotFound,
			fmt.Sprintf("heap %q not found (create it with \"todoheap new %s\")", name, name))
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeStore, "failed to load heap", err)
	}

	h, err := heap.Restore(o, snap, heap.WithLogger(opts.Logger.With("heap", name)))
	if err != nil {
		return nil, WrapExitError(ExitFailure, CodeInvariant, fmt.Sprintf("stored heap %q is inconsistent", name), err)
	}

	opts.Logger.Debug("heap loaded", "heap", name, "items", h.Len())
	return &session{opts: opts, store: st, name: name, heap: h}, nil
}

// save writes the heap back to the store.
func (s *session) save(ctx context.Context) error {
	if err := s.store.SaveHeap(ctx, s.name, s.heap.Snapshot()); err != nil {
		return WrapExitError(ExitCommandError, CodeStore, "failed to save heap", err)
	}
	s.dirty = false
	s.opts.Logger.Debug("heap saved", "heap", s.name, "items", s.heap.Len())
	return nil
}

// add inserts an item, asking the oracle as needed.
func (s *session) add(ctx context.Context, raw string) (string, error) {
	name, err := normalizeItemName(raw)
	if err != nil {
		return "", err
	}
	if _, err := s.heap.Add(ctx, name); err != nil {
		// The item stays in the heap even when a question failed.
		s.dirty = true
		return "", operationError("add "+name, err)
	}
	s.dirty = true
	return name, nil
}

// pop removes the top item. It returns "" and false on an empty heap.
func (s *session) pop(ctx context.Context) (string, bool, error) {
	top, err := s.heap.Pop(ctx)
	if top != nil {
		s.dirty = true
	}
	if err != nil {
		return "", false, operationError("delete", err)
	}
	if top == nil {
		return "", false, nil
	}
	return top.Name(), true, nil
}

// operationError maps a heap operation error to an exit error.
func operationError(op string, err error) error {
	switch {
	case errors.Is(err, oracle.ErrNoInput):
		return WrapExitError(ExitFailure, CodeInput, op+": no answer given", err)
	case errors.Is(err, context.Canceled):
		return WrapExitError(ExitFailure, CodeInput, op+": canceled", err)
	case heap.IsContractError(err), heap.IsOracleFailure(err):
		return WrapExitError(ExitFailure, CodeOracle, op+": oracle failed", err)
	case heap.IsInvariantError(err):
		return WrapExitError(ExitFailure, CodeInvariant, op+": priority relation is inconsistent", err)
	default:
		return WrapExitError(ExitFailure, CodeCommand, op+" failed", err)
	}
}

// notAsking is the oracle for commands that must not ask questions.
var notAsking = heap.OracleFunc(func(ctx context.Context, a, b *heap.Item) (*heap.Item, error) {
	return nil, fmt.Errorf("cannot compare %q and %q without asking", a.Name(), b.Name())
})
