package binding

// Observable is implemented by objects that publish property change
// notifications. Intermediate objects on a binding's source path that
// implement Observable are watched so the binding re-applies when the
// path changes shape; values that do not implement it are simply not
// observed.
//
// The name passed to observers is the changed property's name; an empty
// name means "anything may have changed" and matches every observer.
type Observable interface {
	ObservePropertyChanged(fn func(name string)) (unsubscribe func())
}

// Binding connects a property of a source object to a property of a
// target [Object], propagating value changes in one or both directions.
//
// A binding instance binds exactly one source/target pair for its whole
// lifetime. Apply is called once by the orchestrator to establish the
// pair; Reapply re-enters the same apply path for refreshes and change
// propagation; Unapply tears down observation. Clone produces a fresh
// unapplied instance for binding the same configuration elsewhere.
type Binding interface {
	// Apply binds to the pair (target, property), resolving the source
	// from the binding's fixed source override or, failing that, from
	// context. It returns ErrBindingReused when a prior Apply bound a
	// different live source or target.
	Apply(context any, target *Object, property *Property) error

	// Reapply re-applies the binding without re-resolving source or
	// target identity. fromTarget marks the apply as originating from
	// the target side, selecting the push direction for two-way
	// bindings. It is a no-op before the first successful Apply, and
	// self-unapplies when the target has been collected.
	Reapply(fromTarget bool)

	// Unapply detaches all hop listeners and returns the binding to the
	// unapplied state. Idempotent.
	Unapply()

	// Clone returns a new unapplied binding with the same configuration
	// and no applied state.
	Clone() Binding
}
