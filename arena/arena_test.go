package arena

import (
	"errors"
	"testing"

	"github.com/momentics/uniloop/api"
)

func TestInsertTakeAccounting(t *testing.T) {
	a := New[int]()

	ids := make([]TaskID, 0, 10)
	for i := 0; i < 10; i++ {
		id, err := a.Insert(i)
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		ids = append(ids, id)
	}
	if a.Len() != 10 {
		t.Fatalf("Len = %d, want 10", a.Len())
	}

	seen := 0
	for {
		id, _, ok := a.TakeAnyReady()
		if !ok {
			break
		}
		a.PutBackNothing(id)
		seen++
	}
	if seen != 10 {
		t.Fatalf("drained %d tasks, want 10", seen)
	}
	if a.Len() != 0 {
		t.Fatalf("Len = %d after drain, want 0", a.Len())
	}
}

func TestSlotReuseDoesNotGrow(t *testing.T) {
	a := New[int]()

	for i := 0; i < 4; i++ {
		if _, err := a.Insert(i); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	cap0 := a.Cap()

	// Churn through many generations; the free list must satisfy
	// every insert without growing the backing store.
	for gen := 0; gen < 100; gen++ {
		for i := 0; i < 4; i++ {
			id, _, ok := a.TakeAnyReady()
			if !ok {
				t.Fatalf("gen %d: ready list empty early", gen)
			}
			a.PutBackNothing(id)
		}
		for i := 0; i < 4; i++ {
			if _, err := a.Insert(i); err != nil {
				t.Fatalf("Insert: %v", err)
			}
		}
	}
	if a.Cap() != cap0 {
		t.Fatalf("Cap grew from %d to %d despite free slots", cap0, a.Cap())
	}
}

func TestReadyListIsLIFO(t *testing.T) {
	a := New[string]()

	a.Insert("first")
	a.Insert("second")
	a.Insert("third")

	_, v, ok := a.TakeAnyReady()
	if !ok || v != "third" {
		t.Fatalf("TakeAnyReady = %q, want %q", v, "third")
	}
}

func TestMarkReadyLifecycle(t *testing.T) {
	a := New[int]()

	id, err := a.Insert(7)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Ready slots are not waiting; waking them is a no-op.
	if a.MarkReady(id) {
		t.Fatal("MarkReady on a ready slot must return false")
	}

	gotID, v, ok := a.TakeAnyReady()
	if !ok || gotID != id || v != 7 {
		t.Fatalf("TakeAnyReady = (%d, %d, %v), want (%d, 7, true)", gotID, v, ok, id)
	}

	// Running slots are not wakeable either.
	if a.MarkReady(id) {
		t.Fatal("MarkReady on a running slot must return false")
	}

	a.PutBackWaiting(id, v)
	if !a.MarkReady(id) {
		t.Fatal("MarkReady on a waiting slot must return true")
	}
	// Duplicate wake.
	if a.MarkReady(id) {
		t.Fatal("second MarkReady must be a no-op")
	}

	gotID, _, ok = a.TakeAnyReady()
	if !ok || gotID != id {
		t.Fatalf("task not runnable after wake: (%d, %v)", gotID, ok)
	}
	a.PutBackNothing(id)

	// Late wake after completion.
	if a.MarkReady(id) {
		t.Fatal("MarkReady on a vacant slot must return false")
	}
	if a.MarkReady(TaskID(99)) {
		t.Fatal("MarkReady on an unknown id must return false")
	}
	if a.MarkReady(NoTask) {
		t.Fatal("MarkReady(NoTask) must return false")
	}
}

func TestLateWakeKeepsListsIntact(t *testing.T) {
	a := New[int]()

	id0, _ := a.Insert(0)
	id1, _ := a.Insert(1)

	// Complete id1, then deliver a late wake for it.
	gotID, _, _ := a.TakeAnyReady()
	if gotID != id1 {
		t.Fatalf("expected LIFO head %d, got %d", id1, gotID)
	}
	a.PutBackNothing(id1)
	a.MarkReady(id1)

	// id0 must still be reachable and the free list must still hand
	// out id1's slot.
	gotID, _, ok := a.TakeAnyReady()
	if !ok || gotID != id0 {
		t.Fatalf("ready list corrupted: (%d, %v)", gotID, ok)
	}
	a.PutBackNothing(id0)

	reused, err := a.Insert(2)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if reused != id0 && reused != id1 {
		t.Fatalf("expected slot reuse, got fresh id %d (cap %d)", reused, a.Cap())
	}
}

func TestInsertAtLimit(t *testing.T) {
	a := New[int]()
	a.SetLimit(2)

	a.Insert(0)
	a.Insert(1)
	if _, err := a.Insert(2); !errors.Is(err, api.ErrResourceExhausted) {
		t.Fatalf("Insert beyond limit: err = %v, want ErrResourceExhausted", err)
	}
	if a.Len() != 2 {
		t.Fatalf("failed insert changed Len to %d", a.Len())
	}

	// A freed slot satisfies the next insert even at the limit.
	id, _, _ := a.TakeAnyReady()
	a.PutBackNothing(id)
	if _, err := a.Insert(3); err != nil {
		t.Fatalf("Insert into freed slot: %v", err)
	}
}

func TestPutBackChecksState(t *testing.T) {
	a := New[int]()
	id, _ := a.Insert(1)

	mustPanic(t, func() { a.PutBackNothing(id) })    // slot is ready, not running
	mustPanic(t, func() { a.PutBackWaiting(id, 1) }) // same
	mustPanic(t, func() { a.PutBackNothing(TaskID(5)) })
}

func TestClear(t *testing.T) {
	a := New[int]()
	for i := 0; i < 3; i++ {
		a.Insert(i)
	}
	a.Clear()
	if a.Len() != 0 || a.Cap() != 0 {
		t.Fatalf("Clear left Len=%d Cap=%d", a.Len(), a.Cap())
	}
	if _, _, ok := a.TakeAnyReady(); ok {
		t.Fatal("TakeAnyReady after Clear returned a task")
	}
	if _, err := a.Insert(9); err != nil {
		t.Fatalf("Insert after Clear: %v", err)
	}
}

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	f()
}
