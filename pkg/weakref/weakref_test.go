package weakref

import "testing"

type payload struct {
	value int
}

func TestGetReturnsLiveObject(t *testing.T) {
	p := &payload{value: 42}
	ref := Make(p)

	got, ok := ref.Get()
	if !ok {
		t.Fatal("expected live object")
	}
	if got != p {
		t.Error("Get should return the original pointer")
	}
	if got.value != 42 {
		t.Errorf("value = %d, want 42", got.value)
	}
}

func TestZeroRefIsGone(t *testing.T) {
	var ref Ref[payload]
	if _, ok := ref.Get(); ok {
		t.Error("zero Ref should resolve to nothing")
	}
	if ref.Alive() {
		t.Error("zero Ref should not be alive")
	}
}

func TestMakeNilIsGone(t *testing.T) {
	ref := Make[payload](nil)
	if _, ok := ref.Get(); ok {
		t.Error("Make(nil) should resolve to nothing")
	}
}

func TestRefsFromSamePointerCompareEqual(t *testing.T) {
	p := &payload{}
	a := Make(p)
	b := Make(p)
	if a != b {
		t.Error("Refs made from the same pointer should compare equal")
	}
}

func TestAlive(t *testing.T) {
	p := &payload{}
	ref := Make(p)
	if !ref.Alive() {
		t.Error("expected ref to be alive while the object is reachable")
	}
}
