// Package listing is the list/detail controller behind the admin tables:
// load a collection once, filter it in memory, open one row, and reconcile
// row mutations from the backend's answer.
package listing

import (
	"context"
	"errors"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/forms"
)

// ErrNotConfirmed is returned by Delete when the confirmation step was skipped.
var ErrNotConfirmed = errors.New("listing: deletion not confirmed")

type List[T any] struct {
	id       func(T) string
	items    []T
	selected int

	// Err is the display text of the last failed operation.
	Err string
	// SessionExpired is set when the last failure was an auth rejection.
	SessionExpired bool
}

// New returns an empty list keyed by id.
func New[T any](id func(T) string) *List[T] {
	return &List[T]{id: id, selected: -1}
}

func (l *List[T]) fail(err error, fallback string) error {
	l.Err = forms.Message(err, fallback)
	l.SessionExpired = errors.Is(err, apiclient.ErrUnauthorized)
	return err
}

// Load replaces the list with the result of fetch. On failure the list is
// empty and Err is set.
func (l *List[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error), fallback string) error {
	l.Err, l.SessionExpired = "", false
	l.selected = -1
	items, err := fetch(ctx)
	if err != nil {
		l.items = nil
		return l.fail(err, fallback)
	}
	l.items = items
	return nil
}

func (l *List[T]) Items() []T { return l.items }

func (l *List[T]) Len() int { return len(l.items) }

// Filter returns the items matching pred in list order.
func (l *List[T]) Filter(pred func(T) bool) []T {
	out := make([]T, 0, len(l.items))
	for _, it := range l.items {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func (l *List[T]) index(id string) int {
	for i, it := range l.items {
		if l.id(it) == id {
			return i
		}
	}
	return -1
}

// View selects the item with the given id for the detail view.
func (l *List[T]) View(id string) (T, bool) {
	l.selected = l.index(id)
	return l.Selected()
}

func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.selected < 0 {
		return zero, false
	}
	return l.items[l.selected], true
}

func (l *List[T]) Close() { l.selected = -1 }

// Replace swaps in item for the row with the same id. It reports false when
// no such row exists.
func (l *List[T]) Replace(item T) bool {
	i := l.index(l.id(item))
	if i < 0 {
		return false
	}
	l.items[i] = item
	return true
}

// Remove drops the row with the given id.
func (l *List[T]) Remove(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	switch {
	case l.selected == i:
		l.selected = -1
	case l.selected > i:
		l.selected--
	}
	return true
}

// Mutate runs call for one row and reconciles the row from its result. When
// the backend echoes nothing, local applies the change in place.
func (l *List[T]) Mutate(ctx context.Context, id string, call func(context.Context) (*T, error), local func(*T), fallback string) error {
	i := l.index(id)
	if i < 0 {
		return l.fail(forms.UserError("Item not found"), fallback)
	}
	echo, err := call(ctx)
	if err != nil {
		return l.fail(err, fallback)
	}
	l.Err, l.SessionExpired = "", false
	if echo != nil && l.id(*echo) == id {
		l.items[i] = *echo
		return nil
	}
	if local != nil {
		local(&l.items[i])
	}
	return nil
}

// Delete removes a row after the backend confirms. Without confirmation
// nothing is called and the list is untouched.
func (l *List[T]) Delete(ctx context.Context, id string, confirmed bool, del func(context.Context, string) error, fallback string) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := del(ctx, id); err != nil {
		return l.fail(err, fallback)
	}
	l.Err, l.SessionExpired = "", false
	l.Remove(id)
	return nil
}
