package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/todoheap/internal/oracle"
)

// Trace event types.
const (
	EventAdd    = "add"
	EventDelete = "delete"
	EventPeek   = "peek"
	EventReload = "reload"
	EventQuery  = "query"
)

// TraceEvent is one operation or oracle question in a scenario run.
type TraceEvent struct {
	Seq  int64  `json:"seq"`
	Type string `json:"type"`

	// Item is the added, deleted or peeked item.
	Item string `json:"item,omitempty"`

	// A, B and Winner describe an oracle question.
	A      string `json:"a,omitempty"`
	B      string `json:"b,omitempty"`
	Winner string `json:"winner,omitempty"`

	// Size is the number of items after an operation.
	Size *int `json:"size,omitempty"`

	// Error is the failure code of an operation, or the failure of a
	// question.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if no step, built-in check or assertion failed.
	Pass bool `json:"pass"`

	// Trace contains all operations and oracle questions in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final holds the item names in heap array order after the last step.
	Final []string `json:"final"`

	// Queries is the number of oracle questions asked by the steps.
	Queries int `json:"queries"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Final:  []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddOperationTrace adds a heap operation to the trace.
func (r *Result) AddOperationTrace(typ, item string, size int, errCode string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:   seq,
		Type:  typ,
		Item:  item,
		Size:  &size,
		Error: errCode,
	})
}

// AddQueryTrace adds an oracle question to the trace.
func (r *Result) AddQueryTrace(q oracle.Query, seq int64) {
	ev := TraceEvent{
		Seq:    seq,
		Type:   EventQuery,
		A:      q.A,
		B:      q.B,
		Winner: q.Winner,
	}
	switch {
	case q.Err != nil:
		ev.Error = "failed"
	case q.Winner == "":
		ev.Error = "no_choice"
	}
	r.Trace = append(r.Trace, ev)
}

// formatTrace renders the trace one event per line for failure messages.
func formatTrace(trace []TraceEvent) string {
	var b strings.Builder
	for _, ev := range trace {
		fmt.Fprintf(&b, "  [%d] %s", ev.Seq, ev.Type)
		if ev.Type == EventQuery {
			fmt.Fprintf(&b, " %s vs %s", ev.A, ev.B)
			if ev.Winner != "" {
				fmt.Fprintf(&b, " -> %s", ev.Winner)
			}
		} else if ev.Item != "" {
			fmt.Fprintf(&b, " %s", ev.Item)
		}
		if ev.Error != "" {
			fmt.Fprintf(&b, " (%s)", ev.Error)
		}
		b.WriteString("\n")
	}
	return b.String()
}
