// Package mirror holds the in-memory collections the UI renders from. Lists
// are kept newest-first. Every write stamps the touched entry with a
// collection-wide revision so later rollbacks can tell whether the entry was
// superseded in the meantime.
package mirror

import (
	"sync"

	"github.com/jefanko/app-updates/internal/domain"
)

// Collection is a concurrency-safe ordered list of entities of one type
type Collection[T domain.Entity[T]] struct {
	mu    sync.RWMutex
	items []T
	revs  map[string]uint64
	rev   uint64
}

// NewCollection creates an empty collection
func NewCollection[T domain.Entity[T]]() *Collection[T] {
	return &Collection[T]{
		items: []T{},
		revs:  make(map[string]uint64),
	}
}

// Items returns a copy of the current list
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of entries
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the entry with the given id
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// IndexOf returns the position of id, or -1
func (c *Collection[T]) IndexOf(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id)
}

// Filter returns the entries matching pred, preserving order
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Revision returns the revision stamped on id by its last write, or 0
func (c *Collection[T]) Revision(id string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revs[id]
}

// Generation returns the collection-wide revision counter
func (c *Collection[T]) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rev
}

// Reset replaces the whole list, e.g. after the initial load
func (c *Collection[T]) Reset(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(items)
}

// Prepend inserts item at the head of the list and returns its revision
func (c *Collection[T]) Prepend(item T) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]T{item}, c.items...)
	return c.stamp(item.EntityID())
}

// InsertAt inserts item at index, clamped to the list bounds
func (c *Collection[T]) InsertAt(index int, item T) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insertAt(index, item)
}

// Replace swaps the entry carrying item's id in place. It returns the
// previous value and false when no such entry exists.
func (c *Collection[T]) Replace(item T) (prev T, rev uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(item.EntityID())
	if i < 0 {
		return prev, 0, false
	}
	prev = c.items[i]
	c.items[i] = item
	return prev, c.stamp(item.EntityID()), true
}

// Update applies fn to the entry with the given id. The previous value is
// captured before fn runs.
func (c *Collection[T]) Update(id string, fn func(T) T) (prev T, next T, rev uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return prev, next, 0, false
	}
	prev = c.items[i]
	next = fn(prev).WithID(id)
	c.items[i] = next
	return prev, next, c.stamp(id), true
}

// Remove deletes the entry with the given id, returning it with the index it
// occupied.
func (c *Collection[T]) Remove(id string) (removed T, index int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return removed, -1, false
	}
	removed = c.items[i]
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	delete(c.revs, id)
	c.rev++
	return removed, i, true
}

// ReplaceID swaps the entry oldID for item at the same position. Used when a
// temporary entry is superseded by its authoritative record.
func (c *Collection[T]) ReplaceID(oldID string, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(oldID)
	if i < 0 {
		return false
	}
	c.items[i] = item
	delete(c.revs, oldID)
	c.stamp(item.EntityID())
	return true
}

// RestoreIf puts prev back in place of id only if id still carries rev
func (c *Collection[T]) RestoreIf(id string, rev uint64, prev T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 || c.revs[id] != rev {
		return false
	}
	c.items[i] = prev
	c.stamp(id)
	return true
}

// RemoveIf deletes id only if it still carries rev
func (c *Collection[T]) RemoveIf(id string, rev uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 || c.revs[id] != rev {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	delete(c.revs, id)
	c.rev++
	return true
}

// ReinsertIfAbsent puts item back at index unless an entry with its id has
// reappeared.
func (c *Collection[T]) ReinsertIfAbsent(index int, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(item.EntityID()) >= 0 {
		return false
	}
	c.insertAt(index, item)
	return true
}

// ResetIf replaces the whole list only if nothing was written since gen
func (c *Collection[T]) ResetIf(gen uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rev != gen {
		return false
	}
	c.reset(items)
	return true
}

// MutateAll applies fn to the whole list and returns the previous list with
// the generation produced by the write.
func (c *Collection[T]) MutateAll(fn func([]T) []T) (prev []T, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev = make([]T, len(c.items))
	copy(prev, c.items)

	c.reset(fn(append([]T(nil), c.items...)))
	return prev, c.rev
}

func (c *Collection[T]) reset(items []T) {
	c.items = make([]T, len(items))
	copy(c.items, items)
	c.revs = make(map[string]uint64, len(items))
	c.rev++
	for _, item := range c.items {
		c.revs[item.EntityID()] = c.rev
	}
}

func (c *Collection[T]) insertAt(index int, item T) uint64 {
	if index < 0 {
		index = 0
	}
	if index > len(c.items) {
		index = len(c.items)
	}
	c.items = append(c.items, item)
	copy(c.items[index+1:], c.items[index:])
	c.items[index] = item
	return c.stamp(item.EntityID())
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) stamp(id string) uint64 {
	c.rev++
	c.revs[id] = c.rev
	return c.rev
}
