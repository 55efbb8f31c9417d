package pool

import (
	"sync"
	"testing"
)

func TestRingFIFO(t *testing.T) {
	r := NewRing[int](8)
	for i := 0; i < 8; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("Enqueue(%d) failed on non-full ring", i)
		}
	}
	if r.Enqueue(99) {
		t.Fatal("Enqueue succeeded on full ring")
	}
	for i := 0; i < 8; i++ {
		v, ok := r.Dequeue()
		if !ok || v != i {
			t.Fatalf("Dequeue = (%d, %v), want (%d, true)", v, ok, i)
		}
	}
	if _, ok := r.Dequeue(); ok {
		t.Fatal("Dequeue succeeded on empty ring")
	}
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing[int](4)
	for round := 0; round < 100; round++ {
		for i := 0; i < 3; i++ {
			if !r.Enqueue(round*10 + i) {
				t.Fatalf("round %d: Enqueue failed", round)
			}
		}
		for i := 0; i < 3; i++ {
			v, ok := r.Dequeue()
			if !ok || v != round*10+i {
				t.Fatalf("round %d: Dequeue = (%d, %v)", round, v, ok)
			}
		}
	}
}

func TestRingConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 1000

	r := NewRing[int](4096)
	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				for !r.Enqueue(p*perProducer + i) {
				}
			}
		}(p)
	}

	seen := make(map[int]bool, producers*perProducer)
	for len(seen) < producers*perProducer {
		if v, ok := r.Dequeue(); ok {
			if seen[v] {
				t.Fatalf("duplicate item %d", v)
			}
			seen[v] = true
		}
	}
	wg.Wait()
}

func TestRingSizeMustBePowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-power-of-two size")
		}
	}()
	NewRing[int](3)
}
