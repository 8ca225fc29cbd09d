package heap

// Relation is what is known about the relative priority of two items.
type Relation int

const (
	// Unknown means neither item is known to be higher.
	Unknown Relation = iota
	// AHigher means the first item is known to be higher.
	AHigher
	// BHigher means the second item is known to be higher.
	BHigher
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case AHigher:
		return "a_higher"
	case BHigher:
		return "b_higher"
	default:
		return "unknown"
	}
}

// KnownRelation reports what the recorded relation says about a and b.
//
// Both directions are checked because the order may have been learned from
// either side. If both directions hold the relation has a cycle and an
// invariant error is returned.
func KnownRelation(a, b *Item) (Relation, error) {
	aOver := a.Dominates(b)
	bOver := b.Dominates(a)
	switch {
	case aOver && bOver:
		return Unknown, newInvariantError(a, b, "each item is recorded as higher than the other")
	case aOver:
		return AHigher, nil
	case bOver:
		return BHigher, nil
	}
	return Unknown, nil
}

// RecordHigher records that a is strictly higher priority than b.
//
// Everything known to be at or above a becomes higher than everything known
// to be at or below b, so every item's sets remain the full transitive
// closure. A record that would make an item higher than itself is rejected
// with an invariant error before anything is written. Recording a fact that
// is already known is a no-op.
func RecordHigher(a, b *Item) error {
	if a == b || a.id == b.id {
		return newInvariantError(a, b, "an item cannot be higher priority than itself")
	}
	if b.Dominates(a) {
		return newInvariantError(a, b, "recording would create a cycle")
	}
	if a.Dominates(b) {
		return nil
	}

	above := make([]*Item, 0, len(a.upper)+1)
	above = append(above, a)
	for _, x := range a.upper {
		above = append(above, x)
	}
	below := make([]*Item, 0, len(b.lower)+1)
	below = append(below, b)
	for _, y := range b.lower {
		below = append(below, y)
	}

	for _, x := range above {
		for _, y := range below {
			x.lower[y.id] = y
			y.upper[x.id] = x
		}
	}
	return nil
}
