package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDs_StartsAtOne(t *testing.T) {
	g := NewSequentialIDs()
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", g.NewID().String())
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", g.NewID().String())
}

func TestSequentialIDs_Reset(t *testing.T) {
	g := NewSequentialIDs()
	g.NewID()
	g.NewID()
	g.Reset()
	assert.Equal(t, ID(1), g.NewID())
}

func TestID_Hex(t *testing.T) {
	assert.Equal(t, "00000000-0000-0000-0000-00000000001a", ID(26).String())
}

func TestSequentialIDs_Concurrent(t *testing.T) {
	g := NewSequentialIDs()
	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen.Store(g.NewID(), true)
		}()
	}
	wg.Wait()

	count := 0
	seen.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 50, count, "every id should be unique")
}
