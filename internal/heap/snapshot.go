package heap

// ItemRecord is the persisted form of one item.
type ItemRecord struct {
	ID    ItemID   `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Lower []ItemID `json:"lower,omitempty" yaml:"lower,omitempty"`
}

// Snapshot is the persisted form of a heap: its items in array order and,
// for each, the live items known to be lower priority.
type Snapshot struct {
	MinCapacity int          `json:"min_capacity" yaml:"min_capacity"`
	Items       []ItemRecord `json:"items" yaml:"items"`
}

// Snapshot captures the heap's items and learned relation.
//
// Only relations between live items are captured; facts about deleted items
// were already propagated to the live items they connect.
func (h *Heap) Snapshot() Snapshot {
	live := make(map[ItemID]bool, h.count)
	for i := 0; i < h.count; i++ {
		live[h.items[i].id] = true
	}

	snap := Snapshot{
		MinCapacity: h.minCap,
		Items:       make([]ItemRecord, h.count),
	}
	for i := 0; i < h.count; i++ {
		it := h.items[i]
		var lower []ItemID
		for _, id := range it.LowerIDs() {
			if live[id] {
				lower = append(lower, id)
			}
		}
		snap.Items[i] = ItemRecord{ID: it.id, Name: it.name, Lower: lower}
	}
	return snap
}

// Restore rebuilds a heap from a snapshot.
//
// The snapshot's minimum capacity is applied before opts, so an explicit
// WithMinCapacity option wins. Restore fails with an invalid snapshot error
// if identities repeat, a relation names an unknown item, the relation has a
// cycle, or an item is known to be higher than its parent.
func Restore(oracle Oracle, snap Snapshot, opts ...Option) (*Heap, error) {
	if snap.MinCapacity > 0 {
		opts = append([]Option{WithMinCapacity(snap.MinCapacity)}, opts...)
	}
	h := New(oracle, opts...)

	byID := make(map[ItemID]*Item, len(snap.Items))
	for i, rec := range snap.Items {
		if _, dup := byID[rec.ID]; dup {
			return nil, newSnapshotError("item %d (%q) repeats id %s", i, rec.Name, rec.ID)
		}
		byID[rec.ID] = newItem(rec.ID, rec.Name)
	}
	for _, rec := range snap.Items {
		it := byID[rec.ID]
		for _, lowID := range rec.Lower {
			low, ok := byID[lowID]
			if !ok {
				return nil, newSnapshotError("item %q refers to unknown item %s", rec.Name, lowID)
			}
			if err := RecordHigher(it, low); err != nil {
				return nil, newSnapshotError("relation %q > %q: %v", it.name, low.name, err)
			}
		}
	}

	capacity := h.minCap
	for capacity < len(snap.Items) {
		capacity *= 2
	}
	h.items = make([]*Item, capacity)
	for i, rec := range snap.Items {
		h.items[i] = byID[rec.ID]
	}
	h.count = len(snap.Items)

	if err := h.Verify(); err != nil {
		return nil, newSnapshotError("%v", err)
	}

	// Pairs saved while a reordering was interrupted are decided later.
	for i := 1; i < h.count; i++ {
		if !h.items[parent(i)].Dominates(h.items[i]) {
			h.unsettled = true
			break
		}
	}

	h.logger.Debug("heap restored", "count", h.count, "capacity", capacity)
	return h, nil
}
