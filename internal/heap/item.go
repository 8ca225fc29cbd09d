package heap

import (
	"bytes"
	"slices"

	"github.com/google/uuid"
)

// ItemID is the stable identity of an Item. Items are never compared by name.
type ItemID = uuid.UUID

// IDGenerator produces identities for new items.
type IDGenerator interface {
	NewID() ItemID
}

// UUIDv7Generator generates time-sortable UUIDv7 item identities.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// NewID creates a new UUIDv7.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) NewID() ItemID {
	return uuid.Must(uuid.NewV7())
}

// Item is a named entry in a Heap together with its part of the learned
// priority order.
type Item struct {
	id   ItemID
	name string

	// lower holds every item known to be lower priority than this one and
	// upper every item known to be higher. RecordHigher keeps both closed.
	// Entries are never removed.
	lower map[ItemID]*Item
	upper map[ItemID]*Item
}

func newItem(id ItemID, name string) *Item {
	return &Item{
		id:    id,
		name:  name,
		lower: make(map[ItemID]*Item),
		upper: make(map[ItemID]*Item),
	}
}

// ID returns the item's identity.
func (it *Item) ID() ItemID {
	return it.id
}

// Name returns the item's display label.
func (it *Item) Name() string {
	return it.name
}

// String implements fmt.Stringer.
func (it *Item) String() string {
	return it.name
}

// Dominates reports whether it is known to be higher priority than other.
func (it *Item) Dominates(other *Item) bool {
	_, ok := it.lower[other.id]
	return ok
}

// LowerCount returns how many items are known to be lower priority.
func (it *Item) LowerCount() int {
	return len(it.lower)
}

// LowerIDs returns the identities of all items known to be lower priority,
// sorted so that output built from them is deterministic.
func (it *Item) LowerIDs() []ItemID {
	ids := make([]ItemID, 0, len(it.lower))
	for id := range it.lower {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

func sortIDs(ids []ItemID) {
	slices.SortFunc(ids, func(a, b ItemID) int {
		return bytes.Compare(a[:], b[:])
	})
}
