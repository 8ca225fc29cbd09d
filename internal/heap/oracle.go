package heap

import "context"

// Oracle decides which of two items is higher priority when the recorded
// relation cannot.
//
// Choose may block for as long as it needs (typically on operator input) and
// must return either a or b. Returning any other item is a contract violation
// and aborts the comparison. Returning an error aborts the comparison without
// recording anything.
type Oracle interface {
	Choose(ctx context.Context, a, b *Item) (*Item, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, a, b *Item) (*Item, error)

// Choose calls f(ctx, a, b).
func (f OracleFunc) Choose(ctx context.Context, a, b *Item) (*Item, error) {
	return f(ctx, a, b)
}
