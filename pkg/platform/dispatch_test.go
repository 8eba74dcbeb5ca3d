package platform

import "testing"

func TestDispatchWithoutRegistration(t *testing.T) {
	RegisterDispatch(nil)
	if Dispatch(func() {}) {
		t.Error("Dispatch should report false with no dispatcher registered")
	}
}

func TestDispatchNilCallback(t *testing.T) {
	RegisterDispatch(func(cb func()) { cb() })
	defer RegisterDispatch(nil)
	if Dispatch(nil) {
		t.Error("Dispatch should report false for a nil callback")
	}
}

func TestDispatchInvokesRegisteredFunc(t *testing.T) {
	ran := false
	RegisterDispatch(func(cb func()) { cb() })
	defer RegisterDispatch(nil)

	if !Dispatch(func() { ran = true }) {
		t.Fatal("Dispatch should report true")
	}
	if !ran {
		t.Error("callback did not run")
	}
}

func TestQueuePumpRunsInOrder(t *testing.T) {
	q := NewQueue()
	var order []int
	q.Enqueue(func() { order = append(order, 1) })
	q.Enqueue(func() { order = append(order, 2) })

	if got := q.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
	if got := q.Pump(); got != 2 {
		t.Fatalf("Pump ran %d callbacks, want 2", got)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
	if got := q.Len(); got != 0 {
		t.Errorf("Len after Pump = %d, want 0", got)
	}
}

func TestQueuePumpRunsCallbacksEnqueuedWhilePumping(t *testing.T) {
	q := NewQueue()
	nested := false
	q.Enqueue(func() {
		q.Enqueue(func() { nested = true })
	})

	if got := q.Pump(); got != 2 {
		t.Errorf("Pump ran %d callbacks, want 2", got)
	}
	if !nested {
		t.Error("nested callback did not run")
	}
}

func TestQueueIgnoresNilCallback(t *testing.T) {
	q := NewQueue()
	q.Enqueue(nil)
	if got := q.Len(); got != 0 {
		t.Errorf("Len = %d, want 0", got)
	}
}

func TestQueueAsDispatcher(t *testing.T) {
	q := NewQueue()
	RegisterDispatch(q.Enqueue)
	defer RegisterDispatch(nil)

	ran := false
	if !Dispatch(func() { ran = true }) {
		t.Fatal("Dispatch should report true")
	}
	if ran {
		t.Fatal("callback ran inline; it must wait for Pump")
	}
	q.Pump()
	if !ran {
		t.Error("callback did not run on Pump")
	}
}
