package main

import (
	"fmt"
	"sync"

	"github.com/mgnsk/linklock"
)

func main() {
	list := linklock.NewList[int]()

	// Concurrent writers append to the same list without any external
	// lock.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				list.PushBack(i*100 + j)
			}
		}()
	}
	wg.Wait()

	// Drop every odd value. The body sees each element exclusively
	// locked.
	list.Do(func(e *linklock.Element[int]) linklock.Op {
		if e.Value%2 != 0 {
			return linklock.OpRemove
		}
		return linklock.OpContinue
	})

	fmt.Println("remaining:", list.Len())

	// A keyed, insertion-ordered view over the same machinery.
	idx := linklock.New[string, int](linklock.WithCapacity(128))
	idx.Store("a", 1)
	idx.Store("b", 2)

	idx.Range(func(key string, value int) bool {
		fmt.Println(key, value)
		return true
	})
}
