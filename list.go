/*
Package linklock provides concurrent doubly linked lists synchronized
by link locking, together with a keyed insertion-ordered index built on
them.

The root package is the generic, payload-carrying surface. The
intrusive core lives in the linklist package.
*/
package linklock

import (
	"sync/atomic"
	"unsafe"

	"github.com/mgnsk/linklock/linklist"
)

// Op is the verdict a Do or DoDetached body returns for the current
// element.
type Op = linklist.Op

// Available body verdicts.
const (
	OpContinue = linklist.OpContinue
	OpRemove   = linklist.OpRemove
	OpStop     = linklist.OpStop
)

// Element is a list element carrying a value.
type Element[V any] struct {
	node  linklist.Node // must remain the first field
	Value V
}

// NewElement creates a detached element.
func NewElement[V any](v V) *Element[V] {
	e := &Element[V]{Value: v}
	e.node.Init()
	return e
}

// elementOf recovers the element from its embedded node by a
// fixed-offset adjustment: the node is the first field.
func elementOf[V any](n *linklist.Node) *Element[V] {
	return (*Element[V])(unsafe.Pointer(n))
}

// List is a concurrent doubly linked list. All methods are safe for
// concurrent use by multiple goroutines, except that TakeAll must not
// run concurrently with PushBack or Remove.
type List[V any] struct {
	head linklist.Node
	len  atomic.Int64
}

// NewList creates an empty list.
func NewList[V any]() *List[V] {
	l := &List[V]{}
	l.head.Init()
	return l
}

// Len returns the number of elements in the list. Under concurrent
// modification the count is advisory.
func (l *List[V]) Len() int {
	return int(l.len.Load())
}

// PushBack inserts a value at the back of the list and returns the new
// element.
func (l *List[V]) PushBack(value V) *Element[V] {
	e := NewElement(value)
	l.PushBackElem(e)
	return e
}

// PushBackElem inserts an element at the back of the list. The caller
// must own e exclusively.
func (l *List[V]) PushBackElem(e *Element[V]) {
	l.head.Append(&e.node)
	l.len.Add(1)
}

// PushFront inserts a value at the front of the list and returns the
// new element.
func (l *List[V]) PushFront(value V) *Element[V] {
	e := NewElement(value)
	l.PushFrontElem(e)
	return e
}

// PushFrontElem inserts an element at the front of the list. The
// caller must own e exclusively.
func (l *List[V]) PushFrontElem(e *Element[V]) {
	l.head.Insert(&e.node)
	l.len.Add(1)
}

// TryPushBackElem inserts a possibly shared element at the back of the
// list. It reports false if e was not detached.
func (l *List[V]) TryPushBackElem(e *Element[V]) bool {
	if !l.head.TryAppend(&e.node) {
		return false
	}
	l.len.Add(1)
	return true
}

// TryPushFrontElem inserts a possibly shared element at the front of
// the list. It reports false if e was not detached.
func (l *List[V]) TryPushFrontElem(e *Element[V]) bool {
	if !l.head.TryInsert(&e.node) {
		return false
	}
	l.len.Add(1)
	return true
}

// Remove an element from the list, leaving it detached. It reports
// false if e was already detached, for example removed by a concurrent
// goroutine.
func (l *List[V]) Remove(e *Element[V]) bool {
	if !e.node.Delete() {
		return false
	}
	l.len.Add(-1)
	return true
}

// PopFront removes and returns the first element, or nil if the list
// is empty.
func (l *List[V]) PopFront() *Element[V] {
	n := l.head.Pop()
	if n == nil {
		return nil
	}
	l.len.Add(-1)
	return elementOf[V](n)
}

// TakeAll detaches every element at once and returns them in order,
// leaving the list empty.
//
// TakeAll is safe against concurrent front-side operations but not
// against concurrent PushBack or Remove; see linklist.Behead.
func (l *List[V]) TakeAll() []*Element[V] {
	first := l.head.Behead()
	if first == nil {
		return nil
	}

	var elems []*Element[V]
	for n := first; n != nil; n = n.Next() {
		elems = append(elems, elementOf[V](n))
		l.len.Add(-1)
	}

	// Break the chain up so every element is immediately reusable.
	for _, e := range elems {
		e.node.Init()
	}

	return elems
}

// Do calls f on each element of the list in forward order. The body
// runs with the element fully locked; see linklist.Do for the locking
// contract.
func (l *List[V]) Do(f func(e *Element[V]) Op) {
	l.head.Do(func(n *linklist.Node) Op {
		op := f(elementOf[V](n))
		if op&OpRemove != 0 {
			l.len.Add(-1)
		}
		return op
	})
}

// DoDetached calls f on each element of the list in forward order with
// the element detached. The body may hand the element to another list
// and must then return OpRemove; see linklist.DoDetached for the
// contract.
func (l *List[V]) DoDetached(f func(e *Element[V]) Op) {
	l.head.DoDetached(func(n *linklist.Node) Op {
		op := f(elementOf[V](n))
		if op&OpRemove != 0 {
			l.len.Add(-1)
		}
		return op
	})
}
