/*
Package linklist implements a concurrent intrusive doubly linked list.

The list has no central lock. Threads synchronize by briefly cutting
individual links: a prev/next pointer pair is atomically replaced with a
reserved sentinel, giving the thread that swapped both ends the
exclusive right to reconnect them. Contention is localized to at most
three adjacent nodes, so operations on disjoint regions of the same
list proceed fully in parallel.

A Node is embedded as the first field of a payload struct, or used bare
as a list head. The list is cyclic through the head and never owns or
frees nodes.
*/
package linklist

import "sync/atomic"

// Node is a two-pointer link cell. It is embedded in user payload
// structs or used as a list head.
//
// A node must be initialized with Init before it is passed to
// TryAppend, TryInsert or Delete. Append and Insert trust the caller
// to own the node and accept it in any state.
type Node struct {
	prev, next atomic.Pointer[Node]
}

// busyNode is an otherwise unused global whose address serves as the
// reserved sentinel. A pointer field holding busy marks an in-progress
// lock on that end. The sentinel is never dereferenced and never a
// member of any list.
var busyNode Node

var busy = &busyNode

// Link holds the saved endpoints of a locked region: the nodes that
// were linked from the left and to the right of it. The holder must
// preserve a Link to be able to reconnect what it cut.
type Link struct {
	Prev, Next *Node
}

// Init puts n into the detached state, a singleton loop that is not
// part of any list. An initialized node is an empty list head, and a
// valid argument to every operation.
func (n *Node) Init() {
	n.prev.Store(n)
	n.next.Store(n)
}

// Detached reports whether n is in the detached state.
//
// The answer is only meaningful while the caller owns n or no thread
// is operating on it.
func (n *Node) Detached() bool {
	return n.prev.Load() == n && n.next.Load() == n
}

// Next returns the node currently linked after n.
//
// The snapshot is only meaningful while the caller owns the link or no
// thread is operating on the list.
func (n *Node) Next() *Node {
	return n.next.Load()
}

// Prev returns the node currently linked before n.
//
// The snapshot is only meaningful while the caller owns the link or no
// thread is operating on the list.
func (n *Node) Prev() *Node {
	return n.prev.Load()
}
