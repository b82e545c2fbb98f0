package render

import (
	"maps"
	"slices"
	"sync"
)

// Board is an in-memory Surface. Targets that were never written read as
// empty. Board is safe for concurrent use.
type Board struct {
	mu    sync.RWMutex
	text  map[string]string
	lists map[string][]string
}

// NewBoard creates an empty Board.
func NewBoard() *Board {
	return &Board{
		text:  make(map[string]string),
		lists: make(map[string][]string),
	}
}

// SetText implements Surface.
func (b *Board) SetText(id, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text[id] = text
}

// SetList implements Surface. The slice is copied.
func (b *Board) SetList(id string, items []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists[id] = slices.Clone(items)
}

// Text returns the content of a text target.
func (b *Board) Text(id string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text[id]
}

// List returns a copy of a list target's entries.
func (b *Board) List(id string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.lists[id])
}

// HasText reports whether a text target has ever been written.
func (b *Board) HasText(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.text[id]
	return ok
}

// Empty reports whether nothing has been rendered yet.
func (b *Board) Empty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text) == 0 && len(b.lists) == 0
}

// Equal reports whether two boards hold identical content.
func (b *Board) Equal(other *Board) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	other.mu.RLock()
	defer other.mu.RUnlock()
	return maps.Equal(b.text, other.text) &&
		maps.EqualFunc(b.lists, other.lists, slices.Equal[[]string])
}
