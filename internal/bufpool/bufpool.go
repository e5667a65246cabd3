// SPDX-License-Identifier: EPL-2.0

// Package bufpool keeps short-lived wrapper objects around for reuse so the
// hot path of the bridge does not allocate once it has warmed up.
//
// Unlike sync.Pool, a FreeList never drops items and is not safe for
// concurrent use. The owner serialises access.
package bufpool

// FreeList recycles *T values.
type FreeList[T any] struct {
	free []*T
}

// New returns a FreeList with room for size items before it has to grow.
func New[T any](size int) *FreeList[T] {
	return &FreeList[T]{free: make([]*T, 0, size)}
}

// Acquire returns a recycled item, or a zero-valued new one when the list is
// empty.
func (l *FreeList[T]) Acquire() *T {
	n := len(l.free)
	if n == 0 {
		return new(T)
	}
	item := l.free[n-1]
	l.free[n-1] = nil
	l.free = l.free[:n-1]
	return item
}

// Release hands item back for reuse. The caller must not touch it afterwards.
// Nil is ignored.
func (l *FreeList[T]) Release(item *T) {
	if item == nil {
		return
	}
	l.free = append(l.free, item)
}

// Len is the number of items ready to be acquired.
func (l *FreeList[T]) Len() int { return len(l.free) }
