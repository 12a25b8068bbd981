package linklist

// Append splices e in immediately before l. When l is a list head this
// is a tail append.
//
// Append trusts the caller to own e exclusively and accepts it in any
// state; its previous links are overwritten. Use TryAppend for nodes
// that may be shared.
func (l *Node) Append(e *Node) {
	t := l.lockPrevWait()
	e.prev.Store(t)
	e.next.Store(l)
	t.next.Store(e)
	l.prev.Store(e)
}

// Insert splices e in immediately after l. When l is a list head this
// is a head insert.
//
// Insert trusts the caller to own e exclusively and accepts it in any
// state; its previous links are overwritten.
func (l *Node) Insert(e *Node) {
	f := l.lockNextWait()
	e.prev.Store(l)
	e.next.Store(f)
	f.prev.Store(e)
	l.next.Store(e)
}

// TryAppend atomically claims a detached e and splices it in before l.
// It reports false, leaving every node unmodified, if e was not
// detached.
func (l *Node) TryAppend(e *Node) bool {
	if !e.lockDetachedElem() {
		return false
	}

	t := l.lockPrevWait()
	e.prev.Store(t)
	e.next.Store(l)
	t.next.Store(e)
	l.prev.Store(e)

	return true
}

// TryInsert atomically claims a detached e and splices it in after l.
// It reports false, leaving every node unmodified, if e was not
// detached.
func (l *Node) TryInsert(e *Node) bool {
	if !e.lockDetachedElem() {
		return false
	}

	f := l.lockNextWait()
	e.prev.Store(l)
	e.next.Store(f)
	f.prev.Store(e)
	l.next.Store(e)

	return true
}

// Delete unlinks e from whatever list it is a member of and leaves it
// detached. It reports false if e was already detached.
//
// Delete does not need the list head and is safe to run concurrently
// with any operation on the list except Behead (see Behead).
func (e *Node) Delete() bool {
	var bo backoff
	for {
		back, res := e.lockFull()
		switch res {
		case lockOK:
			back.splice()
			e.unlockSelf()
			return true

		case lockDetached:
			return false
		}
		bo.wait()
	}
}

// Pop removes the first element of the list headed by l and returns it
// detached, or nil if the list is empty.
func (l *Node) Pop() *Node {
	var bo backoff
	for {
		f, ok := l.lockNextLink()
		if !ok {
			bo.wait()
			continue
		}

		if f == l {
			// The empty head's own link was locked.
			l.unlockNext(f)
			return nil
		}

		s, ok := f.lockNextLink()
		if !ok {
			l.unlockNext(f)
			bo.wait()
			continue
		}

		Link{Prev: l, Next: s}.splice()
		f.unlockSelf()

		return f
	}
}

// Behead detaches the entire chain following l and resets l to an
// empty list. The returned chain is terminated so that the first
// node's prev points at the former last node and the last node's next
// is nil. Behead returns nil if the list was empty.
//
// Behead only locks the head's outgoing link. It is safe against
// concurrent head-side operations (Insert on l, Pop), which contend on
// that same link, but NOT against concurrent tail Appends or mid-list
// Deletes: those touch links Behead never locks.
func (l *Node) Behead() *Node {
	var bo backoff
	for {
		f, ok := l.lockNextLink()
		if !ok {
			bo.wait()
			continue
		}

		if f == l {
			l.unlockNext(f)
			return nil
		}

		t := l.prev.Load()
		f.prev.Store(t)
		t.next.Store(nil)
		l.prev.Store(l)
		l.next.Store(l)

		return f
	}
}
