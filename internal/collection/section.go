package collection

import "slices"

// Section is an identity-bearing group of items. Sections only grow at the tail.
type Section[T any] struct {
	ID    string
	Items []T
}

// NewSection builds a section from a copy of items.
func NewSection[T any](id string, items []T) Section[T] {
	return Section[T]{ID: id, Items: slices.Clone(items)}
}

// Append returns a new section with items added to the tail. The receiver's
// backing array is never written, so snapshots that share it stay intact.
func (s Section[T]) Append(items ...T) Section[T] {
	out := make([]T, 0, len(s.Items)+len(items))
	out = append(out, s.Items...)
	out = append(out, items...)
	return Section[T]{ID: s.ID, Items: out}
}

// Len returns the number of items in the section.
func (s Section[T]) Len() int { return len(s.Items) }

// IndexPath addresses an item by section and row.
type IndexPath struct {
	Section int
	Row     int
}

// SectionBuilder groups a batch of items into sections. It is called for the
// first load and for every page.
type SectionBuilder[T any] func(items []T) []Section[T]

// SingleSection is the builder used by the ungrouped variant.
func SingleSection[T any](items []T) []Section[T] {
	return []Section[T]{NewSection("", items)}
}

// MergeSections appends fresh groups after old ones, folding the first fresh
// group into the last old group when their IDs match.
func MergeSections[T any](old, fresh []Section[T]) []Section[T] {
	out := make([]Section[T], 0, len(old)+len(fresh))
	out = append(out, old...)
	if len(out) > 0 && len(fresh) > 0 && out[len(out)-1].ID == fresh[0].ID {
		out[len(out)-1] = out[len(out)-1].Append(fresh[0].Items...)
		fresh = fresh[1:]
	}
	return append(out, fresh...)
}

func countItems[T any](sections []Section[T]) int {
	n := 0
	for _, s := range sections {
		n += len(s.Items)
	}
	return n
}
