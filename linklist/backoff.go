package linklist

import (
	"runtime"
	"time"
)

// Retry delay bounds for conflicted lock acquisitions. Variables so
// that tests can tighten them.
var (
	backoffBase = time.Microsecond
	backoffCap  = time.Millisecond
)

// backoff paces retries of a conflicted operation. The first conflict
// only yields the processor, subsequent conflicts sleep with the delay
// doubling up to backoffCap. The composite operations hold no lock
// across a wait; the iterators keep their current triple locked while
// they wait for the next link.
type backoff struct {
	d time.Duration
}

func (b *backoff) wait() {
	if b.d == 0 {
		b.d = backoffBase
		runtime.Gosched()
		return
	}

	time.Sleep(b.d)

	b.d *= 2
	if b.d > backoffCap {
		b.d = backoffCap
	}
}
