// Package workspace keeps the operator's in-memory copy of clients and their
// records, and merges store responses into it.
package workspace

import (
	"slices"

	"ledger-backend/internal/models"
)

// Collection is an ordered list of records keyed by id.
type Collection[T any] struct {
	items []T
	id    func(T) int
}

func NewCollection[T any](id func(T) int, items []T) *Collection[T] {
	return &Collection[T]{items: slices.Clone(items), id: id}
}

// Items returns a copy.
func (c *Collection[T]) Items() []T { return slices.Clone(c.items) }

func (c *Collection[T]) Len() int { return len(c.items) }

// Prepend puts a newly created record first.
func (c *Collection[T]) Prepend(v T) {
	c.items = slices.Insert(c.items, 0, v)
}

// Replace swaps the record with the same id, false when there is none.
func (c *Collection[T]) Replace(v T) bool {
	i := c.index(c.id(v))
	if i < 0 {
		return false
	}
	c.items[i] = v
	return true
}

// Remove drops the record with id, false when there is none.
func (c *Collection[T]) Remove(id int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c *Collection[T]) Find(id int) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) index(id int) int {
	return slices.IndexFunc(c.items, func(v T) bool { return c.id(v) == id })
}

func clientID(c models.Client) int     { return c.ID }
func paymentID(p models.Payment) int   { return p.ID }
func purchaseID(p models.Purchase) int { return p.ID }
func labelID(l models.Label) int       { return l.ID }
