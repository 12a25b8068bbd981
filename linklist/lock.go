package linklist

// Link acquisition primitives.
//
// Every probe is an atomic exchange that both observes the prior state
// and claims the field. A swap returning busy means another thread
// holds that end; the acquisition rolls back whatever it already
// claimed, in reverse order, and the caller retries after a back-off.
// A failed acquisition keeps none of the ends it claimed, so two
// threads racing for overlapping links both fall back and
// de-synchronize. (The iterators are the exception to holding nothing
// while waiting: they keep their current triple while retrying the
// next link.)

// lockNextLink acquires the link going out of a. On success a.next and
// b.prev hold busy and b is returned.
func (a *Node) lockNextLink() (b *Node, ok bool) {
	b = a.next.Swap(busy)
	if b == busy {
		return nil, false
	}

	if p := b.prev.Swap(busy); p == busy {
		a.next.Store(b)
		return nil, false
	}

	return b, true
}

// lockPrevLink acquires the link coming into e. On success e.prev and
// the predecessor's next hold busy and the predecessor is returned.
func (e *Node) lockPrevLink() (a *Node, ok bool) {
	a = e.prev.Swap(busy)
	if a == busy {
		return nil, false
	}

	if n := a.next.Swap(busy); n == busy {
		e.prev.Store(a)
		return nil, false
	}

	return a, true
}

// lockNextWait retries lockNextLink until it succeeds.
func (a *Node) lockNextWait() *Node {
	var bo backoff
	for {
		if b, ok := a.lockNextLink(); ok {
			return b
		}
		bo.wait()
	}
}

// lockPrevWait retries lockPrevLink until it succeeds.
func (e *Node) lockPrevWait() *Node {
	var bo backoff
	for {
		if a, ok := e.lockPrevLink(); ok {
			return a
		}
		bo.wait()
	}
}

type lockResult int

const (
	lockOK lockResult = iota
	lockBusy
	lockDetached
)

// lockFull acquires e together with both adjacent links: the incoming
// link first, then the outgoing one. On success e is fully locked, its
// neighbors each have one busy end facing e, and the saved endpoints
// are returned. A detached e is recognized by the self-reference read
// out of e.prev and left untouched.
func (e *Node) lockFull() (back Link, res lockResult) {
	a := e.prev.Swap(busy)
	if a == busy {
		return Link{}, lockBusy
	}
	if a == e {
		e.prev.Store(a)
		return Link{}, lockDetached
	}
	if n := a.next.Swap(busy); n == busy {
		e.prev.Store(a)
		return Link{}, lockBusy
	}

	c := e.next.Swap(busy)
	if c == busy {
		a.next.Store(e)
		e.prev.Store(a)
		return Link{}, lockBusy
	}
	if p := c.prev.Swap(busy); p == busy {
		e.next.Store(c)
		a.next.Store(e)
		e.prev.Store(a)
		return Link{}, lockBusy
	}

	return Link{Prev: a, Next: c}, lockOK
}

// lockDetachedElem transitions e from the detached state to fully
// locked. It reports false, leaving e unmodified, if e was not
// detached.
func (e *Node) lockDetachedElem() bool {
	p := e.prev.Swap(busy)
	if p == busy {
		return false
	}
	if p != e {
		e.prev.Store(p)
		return false
	}

	n := e.next.Swap(busy)
	if n == busy {
		e.prev.Store(e)
		return false
	}
	if n != e {
		e.next.Store(n)
		e.prev.Store(e)
		return false
	}

	return true
}

// unlockNext restores the link a -> b.
func (a *Node) unlockNext(b *Node) {
	b.prev.Store(a)
	a.next.Store(b)
}

// unlockSelf writes the detached state into a node whose both ends the
// caller owns.
func (e *Node) unlockSelf() {
	e.prev.Store(e)
	e.next.Store(e)
}

// unlockFull reattaches a fully locked e between its saved neighbors.
func (e *Node) unlockFull(back Link) {
	e.prev.Store(back.Prev)
	e.next.Store(back.Next)
	back.Prev.next.Store(e)
	back.Next.prev.Store(e)
}

// splice reconnects the saved endpoints directly to each other,
// bypassing whatever was locked between them. After a lockFull this is
// what removes the element from the list.
func (lk Link) splice() {
	lk.Next.prev.Store(lk.Prev)
	lk.Prev.next.Store(lk.Next)
}

// LockElem acquires e alone, leaving both adjacent links functional,
// and returns the saved ends. The caller may then observe or mutate
// the payload exclusively: any operation that needs either of e's ends
// waits until UnlockElem.
func (e *Node) LockElem() Link {
	var bo backoff
	for {
		n := e.next.Swap(busy)
		if n != busy {
			p := e.prev.Swap(busy)
			if p != busy {
				return Link{Prev: p, Next: n}
			}
			e.next.Store(n)
		}
		bo.wait()
	}
}

// UnlockElem releases an element acquired with LockElem, restoring the
// saved ends.
func (e *Node) UnlockElem(back Link) {
	e.prev.Store(back.Prev)
	e.next.Store(back.Next)
}

// TryLockPrev attempts to acquire the link coming into e without
// retrying. It returns the predecessor on success and nil if either
// end was contended.
func (e *Node) TryLockPrev() (prev *Node, ok bool) {
	return e.lockPrevLink()
}

// UnlockPrev releases a link acquired with TryLockPrev.
func (e *Node) UnlockPrev(prev *Node) {
	prev.next.Store(e)
	e.prev.Store(prev)
}
