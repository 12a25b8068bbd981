package linklist_test

import (
	"testing"

	"github.com/mgnsk/linklock/linklist"
	. "github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"
)

func TestDo(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		g := NewWithT(t)

		head, _ := newList()

		ran := false
		head.Do(func(n *linklist.Node) linklist.Op {
			ran = true
			return linklist.OpContinue
		})

		g.Expect(ran).To(BeFalse())
	})

	t.Run("forward order", func(t *testing.T) {
		g := NewWithT(t)

		head, _ := newList(1, 2, 3)

		var values []int
		head.Do(func(n *linklist.Node) linklist.Op {
			values = append(values, itemOf(n).v)
			return linklist.OpContinue
		})

		g.Expect(values).To(Equal([]int{1, 2, 3}))
		expectList(g, head, 1, 2, 3)
	})

	t.Run("stop", func(t *testing.T) {
		g := NewWithT(t)

		head, _ := newList(1, 2, 3)

		var values []int
		head.Do(func(n *linklist.Node) linklist.Op {
			values = append(values, itemOf(n).v)
			return linklist.OpStop
		})

		g.Expect(values).To(Equal([]int{1}))
		expectList(g, head, 1, 2, 3)
	})

	t.Run("remove", func(t *testing.T) {
		g := NewWithT(t)

		head, items := newList(1, 2, 3, 4)

		head.Do(func(n *linklist.Node) linklist.Op {
			if itemOf(n).v%2 == 0 {
				return linklist.OpRemove
			}
			return linklist.OpContinue
		})

		expectList(g, head, 1, 3)
		g.Expect(items[1].node.Detached()).To(BeTrue())
		g.Expect(items[3].node.Detached()).To(BeTrue())
	})

	t.Run("remove every element", func(t *testing.T) {
		g := NewWithT(t)

		head, _ := newList(1, 2, 3)

		head.Do(func(n *linklist.Node) linklist.Op {
			return linklist.OpRemove
		})

		expectList(g, head)
		g.Expect(head.Detached()).To(BeTrue())
	})

	t.Run("remove and stop", func(t *testing.T) {
		g := NewWithT(t)

		head, items := newList(1, 2, 3)

		var values []int
		head.Do(func(n *linklist.Node) linklist.Op {
			values = append(values, itemOf(n).v)
			if itemOf(n).v == 2 {
				return linklist.OpRemove | linklist.OpStop
			}
			return linklist.OpContinue
		})

		g.Expect(values).To(Equal([]int{1, 2}))
		expectList(g, head, 1, 3)
		g.Expect(items[1].node.Detached()).To(BeTrue())
	})
}

func TestDoDetached(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		g := NewWithT(t)

		head, _ := newList()

		ran := false
		head.DoDetached(func(n *linklist.Node) linklist.Op {
			ran = true
			return linklist.OpContinue
		})

		g.Expect(ran).To(BeFalse())
	})

	t.Run("item is detached inside the body", func(t *testing.T) {
		g := NewWithT(t)

		head, _ := newList(1, 2, 3)

		var values []int
		head.DoDetached(func(n *linklist.Node) linklist.Op {
			g.Expect(n.Detached()).To(BeTrue())
			values = append(values, itemOf(n).v)
			return linklist.OpContinue
		})

		g.Expect(values).To(Equal([]int{1, 2, 3}))
		expectList(g, head, 1, 2, 3)
	})

	t.Run("stop reattaches the item", func(t *testing.T) {
		g := NewWithT(t)

		head, _ := newList(1, 2, 3)

		head.DoDetached(func(n *linklist.Node) linklist.Op {
			if itemOf(n).v == 2 {
				return linklist.OpStop
			}
			return linklist.OpContinue
		})

		expectList(g, head, 1, 2, 3)
	})

	t.Run("moving items to another list", func(t *testing.T) {
		g := NewWithT(t)

		head, _ := newList(1, 2, 3, 4)

		other := &linklist.Node{}
		other.Init()

		head.DoDetached(func(n *linklist.Node) linklist.Op {
			if itemOf(n).v%2 == 0 {
				g.Expect(other.TryAppend(n)).To(BeTrue())
				return linklist.OpRemove
			}
			return linklist.OpContinue
		})

		expectList(g, head, 1, 3)
		expectList(g, other, 2, 4)
	})

	t.Run("remove and stop", func(t *testing.T) {
		g := NewWithT(t)

		head, items := newList(1, 2, 3)

		head.DoDetached(func(n *linklist.Node) linklist.Op {
			if itemOf(n).v == 2 {
				return linklist.OpRemove | linklist.OpStop
			}
			return linklist.OpContinue
		})

		expectList(g, head, 1, 3)
		g.Expect(items[1].node.Detached()).To(BeTrue())
	})
}

// Concurrent locked iterations, each goroutine removing only the items
// tagged with its own id: the survivors must be exactly the complement
// with nothing lost and nothing removed twice.
func TestConcurrentDoRemove(t *testing.T) {
	const (
		numWorkers  = 4
		numTags     = 8
		numItemsPer = 50
	)

	g := NewWithT(t)

	head, _ := newList()
	for j := 0; j < numItemsPer; j++ {
		for tag := 0; tag < numTags; tag++ {
			it := newItem(tag)
			head.Append(&it.node)
		}
	}

	removed := make([]int, numWorkers)

	var wg errgroup.Group
	for i := 0; i < numWorkers; i++ {
		i := i
		wg.Go(func() error {
			head.Do(func(n *linklist.Node) linklist.Op {
				if itemOf(n).v == i {
					removed[i]++
					return linklist.OpRemove
				}
				return linklist.OpContinue
			})
			return nil
		})
	}
	g.Expect(wg.Wait()).To(Succeed())

	for i := 0; i < numWorkers; i++ {
		g.Expect(removed[i]).To(Equal(numItemsPer))
	}

	counts := make(map[int]int)
	total := 0
	for n := head.Next(); n != head; n = n.Next() {
		counts[itemOf(n).v]++
		total++
	}
	g.Expect(total).To(Equal((numTags - numWorkers) * numItemsPer))
	for tag := numWorkers; tag < numTags; tag++ {
		g.Expect(counts[tag]).To(Equal(numItemsPer))
	}

	expectRing(g, head, total)
}

// Detached iteration running against concurrent appends elsewhere in
// the ring.
func TestConcurrentDoDetached(t *testing.T) {
	const numItems = 100

	g := NewWithT(t)

	head, _ := newList()
	for j := 0; j < numItems; j++ {
		it := newItem(j)
		head.Append(&it.node)
	}

	other := &linklist.Node{}
	other.Init()

	var wg errgroup.Group
	wg.Go(func() error {
		head.DoDetached(func(n *linklist.Node) linklist.Op {
			if !other.TryAppend(n) {
				return linklist.OpStop
			}
			return linklist.OpRemove
		})
		return nil
	})
	wg.Go(func() error {
		for j := 0; j < numItems; j++ {
			it := newItem(numItems + j)
			head.Append(&it.node)
		}
		return nil
	})
	g.Expect(wg.Wait()).To(Succeed())

	// Nothing was lost between the two lists.
	moved := 0
	for n := other.Next(); n != other; n = n.Next() {
		moved++
	}
	stayed := 0
	for n := head.Next(); n != head; n = n.Next() {
		stayed++
	}
	g.Expect(moved + stayed).To(Equal(2 * numItems))

	expectRing(g, head, stayed)
	expectRing(g, other, moved)
}
