package heap

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// errNoOracle is returned when a comparison needs an answer and the heap was
// built without an oracle.
var errNoOracle = errors.New("no oracle configured")

// Comparator is the learned comparator used by Heap.
//
// IsHigher answers from the recorded relation when it can and asks the Oracle
// only when it cannot. Each answer is recorded before IsHigher returns, so the
// oracle is consulted at most once for any pair whose order is not already
// implied.
type Comparator struct {
	oracle  Oracle
	logger  *slog.Logger
	queries int
}

// NewComparator creates a comparator backed by oracle.
// A nil logger discards log output.
func NewComparator(oracle Oracle, logger *slog.Logger) *Comparator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Comparator{oracle: oracle, logger: logger}
}

// IsHigher reports whether a is higher priority than b.
//
// Ties do not exist: when IsHigher returns false without error, b is
// recorded (or was already known) as higher than a.
func (c *Comparator) IsHigher(ctx context.Context, a, b *Item) (bool, error) {
	rel, err := c.Known(a, b)
	if err != nil {
		return false, err
	}
	switch rel {
	case AHigher:
		return true, nil
	case BHigher:
		return false, nil
	}
	return c.ask(ctx, a, b)
}

// Known reports the recorded relation between a and b without consulting the
// oracle. Invariant faults are logged and returned.
func (c *Comparator) Known(a, b *Item) (Relation, error) {
	rel, err := KnownRelation(a, b)
	if err != nil {
		c.logger.Error("priority relation is inconsistent",
			"a", a.name,
			"b", b.name,
			"error", err)
		return Unknown, err
	}
	return rel, nil
}

// Queries returns the number of times the oracle has been consulted.
func (c *Comparator) Queries() int {
	return c.queries
}

func (c *Comparator) ask(ctx context.Context, a, b *Item) (bool, error) {
	if c.oracle == nil {
		return false, newOracleFailure(a, b, errNoOracle)
	}
	if err := ctx.Err(); err != nil {
		return false, newOracleFailure(a, b, err)
	}

	c.queries++
	c.logger.Debug("asking oracle", "a", a.name, "b", b.name, "query", c.queries)

	winner, err := c.oracle.Choose(ctx, a, b)
	if err != nil {
		c.logger.Warn("oracle failed", "a", a.name, "b", b.name, "error", err)
		return false, newOracleFailure(a, b, err)
	}

	var loser *Item
	switch winner {
	case a:
		loser = b
	case b:
		loser = a
	default:
		err := newContractError(a, b, winner)
		c.logger.Error("oracle broke its contract", "error", err)
		return false, err
	}

	if err := RecordHigher(winner, loser); err != nil {
		c.logger.Error("recording priority failed",
			"higher", winner.name,
			"lower", loser.name,
			"error", err)
		return false, err
	}
	c.logger.Debug("priority recorded", "higher", winner.name, "lower", loser.name)

	return winner == a, nil
}
