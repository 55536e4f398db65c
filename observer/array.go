package observer

import (
	"cmp"
	"fmt"
	"slices"
)

// mutator is the method surface for the seven mutating operations of an
// Array. Observing an array swaps in a decorator for that one instance.
type mutator interface {
	push(a *Array, items []any) int
	pop(a *Array) any
	shift(a *Array) any
	unshift(a *Array, items []any) int
	splice(a *Array, start, deleteCount int, items []any) []any
	sort(a *Array, compare func(x, y any) int)
	reverse(a *Array)
}

// Array is an ordered container. Element reads and index writes are plain;
// only the mutating methods are intercepted once the array is observed.
type Array struct {
	containerState

	items []any
	m     mutator
}

func NewArray(items ...any) *Array {
	return &Array{
		items: slices.Clone(items),
	}
}

func (a *Array) Len() int {
	return len(a.items)
}

// At returns the element at i, or nil when i is out of range.
func (a *Array) At(i int) any {
	if i < 0 || i >= len(a.items) {
		return nil
	}
	return a.items[i]
}

// Items returns a copy of the elements.
func (a *Array) Items() []any {
	return slices.Clone(a.items)
}

// SetAt assigns index i, growing the array with nils when needed. Index
// writes are not intercepted; use System.Set to make them notify. Indexes
// outside [0, MaxArrayIndex] are ignored.
func (a *Array) SetAt(i int, v any) {
	if i < 0 || i > MaxArrayIndex {
		return
	}
	if i >= len(a.items) {
		a.SetLength(i + 1)
	}
	a.items[i] = v
}

// SetLength truncates or pads the array with nils. It does not notify.
// Lengths beyond MaxArrayIndex+1 are ignored.
func (a *Array) SetLength(n int) {
	if n < 0 || n > MaxArrayIndex+1 {
		return
	}
	if n <= len(a.items) {
		clear(a.items[n:])
		a.items = a.items[:n]
		return
	}
	a.items = append(a.items, make([]any, n-len(a.items))...)
}

// Push appends items and returns the new length.
func (a *Array) Push(items ...any) int {
	return a.mutator().push(a, items)
}

// Pop removes and returns the last element, nil when empty.
func (a *Array) Pop() any {
	return a.mutator().pop(a)
}

// Shift removes and returns the first element, nil when empty.
func (a *Array) Shift() any {
	return a.mutator().shift(a)
}

// Unshift inserts items at the front and returns the new length.
func (a *Array) Unshift(items ...any) int {
	return a.mutator().unshift(a, items)
}

// Splice removes deleteCount elements at start, inserts items in their place
// and returns the removed elements. A negative start counts from the end.
func (a *Array) Splice(start, deleteCount int, items ...any) []any {
	return a.mutator().splice(a, start, deleteCount, items)
}

// Sort sorts in place with a stable sort. A nil compare orders elements by
// their formatted string, as a plain sequence sort would.
func (a *Array) Sort(compare func(x, y any) int) {
	a.mutator().sort(a, compare)
}

func (a *Array) Reverse() {
	a.mutator().reverse(a)
}

func (a *Array) mutator() mutator {
	if a.m == nil {
		return plainArray{}
	}
	return a.m
}

type plainArray struct{}

func (plainArray) push(a *Array, items []any) int {
	a.items = append(a.items, items...)
	return len(a.items)
}

func (plainArray) pop(a *Array) any {
	n := len(a.items)
	if n == 0 {
		return nil
	}
	v := a.items[n-1]
	a.items[n-1] = nil
	a.items = a.items[:n-1]
	return v
}

func (plainArray) shift(a *Array) any {
	if len(a.items) == 0 {
		return nil
	}
	v := a.items[0]
	a.items = slices.Delete(a.items, 0, 1)
	return v
}

func (plainArray) unshift(a *Array, items []any) int {
	a.items = slices.Insert(a.items, 0, items...)
	return len(a.items)
}

func (plainArray) splice(a *Array, start, deleteCount int, items []any) []any {
	start, deleteCount = spliceBounds(len(a.items), start, deleteCount)
	removed := slices.Clone(a.items[start : start+deleteCount])
	a.items = slices.Replace(a.items, start, start+deleteCount, items...)
	return removed
}

func (plainArray) sort(a *Array, compare func(x, y any) int) {
	if compare == nil {
		compare = func(x, y any) int {
			return cmp.Compare(fmt.Sprint(x), fmt.Sprint(y))
		}
	}
	slices.SortStableFunc(a.items, compare)
}

func (plainArray) reverse(a *Array) {
	slices.Reverse(a.items)
}

func spliceBounds(n, start, deleteCount int) (int, int) {
	switch {
	case start < 0:
		start = max(n+start, 0)
	case start > n:
		start = n
	}
	deleteCount = min(max(deleteCount, 0), n-start)
	return start, deleteCount
}
