package linklist

// Op is the verdict a Do or DoDetached body returns for the current
// item. OpRemove and OpStop may be combined.
type Op uint8

const (
	// OpContinue keeps the item in the list and advances.
	OpContinue Op = 0
	// OpRemove removes the item from the list. Under Do the item is
	// left detached; under DoDetached it is left exactly as the body
	// left it.
	OpRemove Op = 1 << 0
	// OpStop ends the iteration after the current item is handled.
	OpStop Op = 1 << 1
)

// Do calls f on each element of the list headed by l, in forward
// order.
//
// The body runs with the current item fully locked and one busy end
// held on each neighbor, so concurrent operations touching the item or
// its two links wait; everything else proceeds. At most one such
// triple is held at any time, and every exit path releases it.
// An item removed with OpRemove is spliced out and left detached,
// ready for reuse or another list.
//
// f must not operate on the locked item's links itself and must not
// panic: unwinding out of the body leaves the list cut.
func (l *Node) Do(f func(n *Node) Op) {
	prev := l
	cur := l.lockNextWait()
	if cur == l {
		prev.unlockNext(cur)
		return
	}
	next := cur.lockNextWait()

	for {
		op := f(cur)

		if op&OpRemove != 0 {
			cur.unlockSelf()
			if op&OpStop != 0 || next == l {
				Link{Prev: prev, Next: next}.splice()
				return
			}
			// The held ends now frame the gap; prev keeps its place.
			cur = next
			next = cur.lockNextWait()
			continue
		}

		if op&OpStop != 0 || next == l {
			cur.unlockFull(Link{Prev: prev, Next: next})
			return
		}

		// Reattach the incoming link, advance with the outgoing one
		// still held.
		prev.unlockNext(cur)
		prev = cur
		cur = next
		next = cur.lockNextWait()
	}
}

// DoDetached calls f on each element of the list headed by l, in
// forward order, with the current item detached.
//
// The body sees the item as a singleton loop while the iterator holds
// one busy end on each former neighbor, framing the gap. Because the
// item is detached the body may hand it to another list, e.g. with
// TryAppend; it must then return OpRemove so the iterator does not
// reattach it. On OpContinue the item is reattached between its saved
// neighbors before advancing.
//
// f must not panic: unwinding out of the body leaves the list cut.
func (l *Node) DoDetached(f func(n *Node) Op) {
	prev := l
	cur := l.lockNextWait()
	if cur == l {
		prev.unlockNext(cur)
		return
	}
	next := cur.lockNextWait()
	cur.unlockSelf()

	for {
		op := f(cur)

		if op&OpRemove != 0 {
			if op&OpStop != 0 || next == l {
				Link{Prev: prev, Next: next}.splice()
				return
			}
			cur = next
			next = cur.lockNextWait()
			cur.unlockSelf()
			continue
		}

		if op&OpStop != 0 || next == l {
			cur.prev.Store(prev)
			cur.next.Store(next)
			prev.next.Store(cur)
			next.prev.Store(cur)
			return
		}

		// Take the next item's outgoing link, then close the gap
		// behind cur and open one in front of it.
		d := next.lockNextWait()
		cur.prev.Store(prev)
		cur.next.Store(busy)
		prev.next.Store(cur)

		prev = cur
		cur = next
		cur.unlockSelf()
		next = d
	}
}
