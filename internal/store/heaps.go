package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/todoheap/internal/heap"
)

// HeapInfo describes a stored heap.
type HeapInfo struct {
	Name        string `json:"name"`
	MinCapacity int    `json:"min_capacity"`
	Count       int    `json:"count"`
	Saves       int64  `json:"saves"`
}

// CreateHeap creates an empty heap called name.
// Returns ErrHeapExists if the name is taken.
func (s *Store) CreateHeap(ctx context.Context, name string, minCapacity int) error {
	if minCapacity < 1 {
		return fmt.Errorf("create heap %q: min capacity must be at least 1, got %d", name, minCapacity)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO heaps (name, min_capacity)
		VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, minCapacity)
	if err != nil {
		return fmt.Errorf("create heap %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create heap %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("create heap %q: %w", name, ErrHeapExists)
	}
	return nil
}

// SaveHeap replaces the stored contents of heap name with snap.
// Returns ErrHeapNotFound if the heap was never created.
//
// The replacement happens in a single transaction. The snapshot's minimum
// capacity is stored when it is set.
func (s *Store) SaveHeap(ctx context.Context, name string, snap heap.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save heap %q: begin: %w", name, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE heaps
		SET saves = saves + 1,
		    min_capacity = CASE WHEN ? > 0 THEN ? ELSE min_capacity END
		WHERE name = ?
	`, snap.MinCapacity, snap.MinCapacity, name)
	if err != nil {
		return fmt.Errorf("save heap %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save heap %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("save heap %q: %w", name, ErrHeapNotFound)
	}

	// Relations cascade with their items.
	if _, err = tx.ExecContext(ctx, `DELETE FROM items WHERE heap_name = ?`, name); err != nil {
		return fmt.Errorf("save heap %q: clear items: %w", name, err)
	}

	for i, rec := range snap.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO items (heap_name, id, position, name)
			VALUES (?, ?, ?, ?)
		`, name, rec.ID.String(), i, rec.Name); err != nil {
			return fmt.Errorf("save heap %q: item %q: %w", name, rec.Name, err)
		}
	}

	for _, rec := range snap.Items {
		for _, lower := range rec.Lower {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO relations (heap_name, higher_id, lower_id)
				VALUES (?, ?, ?)
			`, name, rec.ID.String(), lower.String()); err != nil {
				return fmt.Errorf("save heap %q: relation %s > %s: %w", name, rec.ID, lower, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save heap %q: commit: %w", name, err)
	}
	return nil
}

// LoadHeap reads the stored snapshot of heap name.
// Returns ErrHeapNotFound if it does not exist.
func (s *Store) LoadHeap(ctx context.Context, name string) (heap.Snapshot, error) {
	var snap heap.Snapshot
	err := s.db.QueryRowContext(ctx, `
		SELECT min_capacity FROM heaps WHERE name = ?
	`, name).Scan(&snap.MinCapacity)
	if errors.Is(err, sql.ErrNoRows) {
		return heap.Snapshot{}, fmt.Errorf("load heap %q: %w", name, ErrHeapNotFound)
	}
	if err != nil {
		return heap.Snapshot{}, fmt.Errorf("load heap %q: %w", name, err)
	}

	items, err := s.readItems(ctx, name)
	if err != nil {
		return heap.Snapshot{}, fmt.Errorf("load heap %q: %w", name, err)
	}
	if err := s.readRelations(ctx, name, items); err != nil {
		return heap.Snapshot{}, fmt.Errorf("load heap %q: %w", name, err)
	}

	snap.Items = items
	if snap.Items == nil {
		snap.Items = []heap.ItemRecord{}
	}
	return snap, nil
}

// ListHeaps returns every stored heap ordered by name.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListHeaps(ctx context.Context) ([]HeapInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.name, h.min_capacity, h.saves, COUNT(i.id)
		FROM heaps h
		LEFT JOIN items i ON i.heap_name = h.name
		GROUP BY h.name
		ORDER BY h.name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list heaps: %w", err)
	}
	defer rows.Close()

	heaps := []HeapInfo{}
	for rows.Next() {
		var info HeapInfo
		if err := rows.Scan(&info.Name, &info.MinCapacity, &info.Saves, &info.Count); err != nil {
			return nil, fmt.Errorf("scan heap: %w", err)
		}
		heaps = append(heaps, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heaps: %w", err)
	}
	return heaps, nil
}

// DeleteHeap removes heap name with its items and relations.
// Returns ErrHeapNotFound if it does not exist.
func (s *Store) DeleteHeap(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM heaps WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete heap %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete heap %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete heap %q: %w", name, ErrHeapNotFound)
	}
	return nil
}

// readItems returns the items of a heap in array order.
func (s *Store) readItems(ctx context.Context, heapName string) ([]heap.ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM items
		WHERE heap_name = ?
		ORDER BY position ASC
	`, heapName)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []heap.ItemRecord
	for rows.Next() {
		var (
			rawID string
			rec   heap.ItemRecord
		)
		if err := rows.Scan(&rawID, &rec.Name); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if rec.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("item %q has malformed id %q: %w", rec.Name, rawID, err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// readRelations fills in the Lower list of each item.
func (s *Store) readRelations(ctx context.Context, heapName string, items []heap.ItemRecord) error {
	index := make(map[uuid.UUID]int, len(items))
	for i, rec := range items {
		index[rec.ID] = i
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT higher_id, lower_id
		FROM relations
		WHERE heap_name = ?
		ORDER BY higher_id COLLATE BINARY ASC, lower_id COLLATE BINARY ASC
	`, heapName)
	if err != nil {
		return fmt.Errorf("query relations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rawHigher, rawLower string
		if err := rows.Scan(&rawHigher, &rawLower); err != nil {
			return fmt.Errorf("scan relation: %w", err)
		}
		higher, err := uuid.Parse(rawHigher)
		if err != nil {
			return fmt.Errorf("relation has malformed id %q: %w", rawHigher, err)
		}
		lower, err := uuid.Parse(rawLower)
		if err != nil {
			return fmt.Errorf("relation has malformed id %q: %w", rawLower, err)
		}
		i, ok := index[higher]
		if !ok {
			return fmt.Errorf("relation refers to unknown item %s", higher)
		}
		items[i].Lower = append(items[i].Lower, lower)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate relations: %w", err)
	}
	return nil
}
