package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a
// specific day. Dates are unique and the series is always sorted, so lookups
// can binary-search.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of points in the history.
func (h *History[T]) Len() int { return len(h.days) }

// search locates day in the sorted slice, returning its index and whether it
// was found; when not found the index is the insertion point.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Append adds a point to the history, keeping it sorted.
// An existing value on the same day is overwritten: the last write wins.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the value recorded exactly on day.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on the given day, or the most recent value
// before it. This is the carry-forward lookup: it never interpolates and
// never looks into the future. It returns the zero value and false when no
// point exists on or before day.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// First returns the earliest point of the history, or false when empty.
func (h *History[T]) First() (Date, T, bool) {
	if len(h.days) == 0 {
		var zero T
		return Date{}, zero, false
	}
	return h.days[0], h.values[0], true
}

// Latest returns the most recent point of the history, or false when empty.
func (h *History[T]) Latest() (Date, T, bool) {
	last := len(h.days) - 1
	if last < 0 {
		var zero T
		return Date{}, zero, false
	}
	return h.days[last], h.values[last], true
}

// Values returns an iterator over all points in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
