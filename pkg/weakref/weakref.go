// Package weakref provides weak handles to objects whose lifetime is
// owned elsewhere.
//
// A binding observes its source and target without keeping either alive.
// Ref wraps the runtime's weak pointer support behind a lookup that
// either returns the live object or reports it gone. Callers must
// re-check the result on every use: a collection can race with
// resolution, and "gone" is an expected state, not an error.
package weakref

import "weak"

// Ref is a weak handle to a value of type T.
//
// The zero Ref resolves to nothing. Ref values are comparable; two Refs
// made from the same pointer compare equal.
type Ref[T any] struct {
	ptr weak.Pointer[T]
	set bool
}

// Make returns a weak handle to v. Make(nil) returns a Ref that is
// already gone.
func Make[T any](v *T) Ref[T] {
	if v == nil {
		return Ref[T]{}
	}
	return Ref[T]{ptr: weak.Make(v), set: true}
}

// Get resolves the handle. It returns the live object and true, or nil
// and false once the object has been collected or the Ref was never set.
func (r Ref[T]) Get() (*T, bool) {
	if !r.set {
		return nil, false
	}
	v := r.ptr.Value()
	if v == nil {
		return nil, false
	}
	return v, true
}

// Alive reports whether the handle still resolves to a live object.
func (r Ref[T]) Alive() bool {
	_, ok := r.Get()
	return ok
}
