package linklist

import (
	"testing"
	"time"
)

func TestBackoffGrowth(t *testing.T) {
	defer func(base, cap time.Duration) {
		backoffBase = base
		backoffCap = cap
	}(backoffBase, backoffCap)

	backoffBase = time.Nanosecond
	backoffCap = 8 * time.Nanosecond

	var b backoff

	b.wait()
	if b.d != backoffBase {
		t.Fatalf("expected first wait to arm the base delay, got %v", b.d)
	}

	for i := 0; i < 10; i++ {
		b.wait()
		if b.d > backoffCap {
			t.Fatalf("delay %v exceeds cap %v", b.d, backoffCap)
		}
	}

	if b.d != backoffCap {
		t.Fatalf("expected delay to saturate at %v, got %v", backoffCap, b.d)
	}
}
