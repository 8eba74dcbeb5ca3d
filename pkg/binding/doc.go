// Package binding implements typed, compiled data binding between
// bindable objects.
//
// A binding connects a property of a source object, reached through a
// statically-known access path, to a property of a target [Object]. It
// propagates value changes in one or both directions, converts values
// through an optional [Converter] plus a generic coercion step, and
// re-subscribes to intermediate path hops when they change identity.
// Access paths are compiled: the getter, setter, and per-hop accessors
// are plain functions, so no path string is parsed and no member is
// looked up by reflection on the update path.
//
// # Declaring a binding
//
// Bind a Person's Name to a label's Text property:
//
//	var TextProperty = binding.NewProperty[string]("Text", "")
//
//	b := binding.NewTypedBinding(
//	    func(p *Person) (string, bool) { return p.Name, true },
//	    func(p *Person, v string) { p.Name = v },
//	    []binding.Part[Person]{
//	        {Resolve: func(p *Person) any { return p }, Name: "Name"},
//	    },
//	)
//	b.Mode = binding.TwoWay
//
//	label := binding.NewObject()
//	label.SetBindingContext(person)
//	label.Bind(TextProperty, b)
//
// Multi-hop paths add one [Part] per intermediate object. When a hop
// resolves to nil, the getter reports ok=false and the target falls
// back to the property's default until a change notification re-applies
// the binding.
//
// # Lifecycle
//
// A binding is unapplied until its first Apply, applied until Unapply,
// and bound to exactly one source/target pair for its whole lifetime.
// Re-applying to the same pair refreshes the binding; applying to a
// different pair returns [ErrBindingReused]. Clone produces a fresh
// unapplied binding for reusing the configuration elsewhere.
//
// Both endpoints are held weakly. A collected target unapplies the
// binding on the next re-apply; a collected source leaves the target at
// the property default.
//
// # Threading
//
// All binding mutation happens on the UI thread. Change notifications
// may fire on any goroutine; hop listeners never touch binding state
// inline and instead schedule a re-apply through the dispatcher
// registered with the platform package.
//
// # Failure handling
//
// A value that cannot be coerced to the required type skips that single
// write and logs a warning through the errors package; the binding
// stays applied and retries on the next change. Only construction with
// a nil getter (panic) and pair reuse (error) surface as failures.
package binding
