package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/todoheap/internal/heap"
	"github.com/roach88/todoheap/internal/oracle"
	"github.com/roach88/todoheap/internal/store"
	"github.com/roach88/todoheap/internal/testutil"
)

// storedHeapName is the name reload steps save the scenario heap under.
const storedHeapName = "scenario"

// Harness is the scenario execution engine.
// It runs scenarios with deterministic identities and sequence numbers.
type Harness struct {
	store    *store.Store
	heap     *heap.Heap
	oracle   heap.Oracle
	recorder *oracle.Recorder
	clock    *testutil.TraceClock
	ids      *testutil.SequentialIDs
	logger   *slog.Logger
	opts     []heap.Option
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and oracle
// 2. Execute steps, checking heap invariants after each
// 3. Check that no pair was asked twice
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext is Run with a context and logger. A nil logger discards logs.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if err := st.CreateHeap(ctx, storedHeapName, 1); err != nil {
		return nil, fmt.Errorf("failed to create scenario heap: %w", err)
	}

	result := NewResult()
	h := &Harness{
		store:  st,
		oracle: newOracle(scenario.Oracle),
		clock:  testutil.NewTraceClock(),
		ids:    testutil.NewSequentialIDs(),
		logger: logger,
	}
	h.recorder = oracle.NewRecorder(h.oracle)
	h.recorder.OnQuery = func(q oracle.Query) {
		result.AddQueryTrace(q, h.clock.Next())
	}

	h.opts = []heap.Option{heap.WithIDGenerator(h.ids), heap.WithLogger(logger)}
	if scenario.MinCapacity > 0 {
		h.opts = append(h.opts, heap.WithMinCapacity(scenario.MinCapacity))
	}
	h.heap = heap.New(h.recorder, h.opts...)

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, err
		}
	}

	for _, q := range h.recorder.Repeated() {
		result.AddError(fmt.Sprintf("oracle asked about %q vs %q more than once", q.A, q.B))
	}

	result.Final = h.heap.Names()
	result.Queries = h.recorder.Count()

	actx := &AssertionContext{
		Ctx:      ctx,
		Heap:     h.heap,
		Oracle:   h.oracle,
		Recorder: h.recorder,
		IDs:      h.ids,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"queries", result.Queries)
	return result, nil
}

// executeStep runs one step and records it in the trace.
// Step failures are recorded in result; only infrastructure failures are
// returned.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) error {
	var (
		item   string
		opErr  error
		failed string
	)

	switch step.Kind() {
	case EventAdd:
		item = step.Add
		_, opErr = h.heap.Add(ctx, step.Add)
	case EventDelete:
		var top *heap.Item
		top, opErr = h.heap.Pop(ctx)
		if top != nil {
			item = top.Name()
		}
	case EventPeek:
		top, ok := h.heap.Peek()
		item = top
		if want := *step.Peek; top != want {
			if !ok {
				top = "<empty>"
			}
			result.AddError(fmt.Sprintf("steps[%d]: peek = %q, want %q", i, top, want))
		}
	case EventReload:
		if err := h.reload(ctx); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	if opErr != nil {
		failed = errorCode(opErr)
	}
	if failed != step.ExpectError {
		switch {
		case step.ExpectError == "":
			result.AddError(fmt.Sprintf("steps[%d]: %s failed: %v", i, step.Kind(), opErr))
		case opErr == nil:
			result.AddError(fmt.Sprintf("steps[%d]: %s succeeded, want %s", i, step.Kind(), step.ExpectError))
		default:
			result.AddError(fmt.Sprintf("steps[%d]: %s failed with %s, want %s: %v",
				i, step.Kind(), failed, step.ExpectError, opErr))
		}
	}

	result.AddOperationTrace(step.Kind(), item, h.heap.Len(), failed, h.clock.Next())

	if err := h.heap.Verify(); err != nil {
		result.AddError(fmt.Sprintf("steps[%d]: heap invalid after %s: %v", i, step.Kind(), err))
	}

	h.logger.Debug("step completed",
		"step", i,
		"op", step.Kind(),
		"item", item,
		"size", h.heap.Len())
	return nil
}

// reload round-trips the heap through the store.
func (h *Harness) reload(ctx context.Context) error {
	if err := h.store.SaveHeap(ctx, storedHeapName, h.heap.Snapshot()); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	snap, err := h.store.LoadHeap(ctx, storedHeapName)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	restored, err := heap.Restore(h.recorder, snap, h.opts...)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	h.heap = restored
	return nil
}

// newOracle builds the oracle a scenario asks for.
func newOracle(spec OracleSpec) heap.Oracle {
	if len(spec.Answers) > 0 {
		return oracle.NewScript(spec.Answers...)
	}
	return oracle.NewRanking(spec.Ranking...)
}

// errorCode maps an operation error to its expect_error code.
func errorCode(err error) string {
	var he *heap.Error
	if errors.As(err, &he) {
		return strings.ToLower(string(he.Code))
	}
	return "error"
}
