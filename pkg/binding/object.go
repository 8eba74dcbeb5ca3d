package binding

import (
	"sync"

	"github.com/go-drift/databind/pkg/errors"
)

// warnCategory is the logging category for binding diagnostics.
const warnCategory = "Binding"

// SetValueFlags control how SetValueCore stores a value.
type SetValueFlags uint8

const (
	// SetValueNone stores the value with default semantics.
	SetValueNone SetValueFlags = 0
	// SetValueClearDynamic detaches any dynamic value provider from the
	// property. User-originated writes set this; binding writes do not,
	// so a binding write never severs a style or resource subscription.
	SetValueClearDynamic SetValueFlags = 1 << 0
	// SetValueConverted marks the value as already converted to the
	// property's type, skipping the declared conversion.
	SetValueConverted SetValueFlags = 1 << 1
)

// Object stores arbitrary named property values with defaults and
// change notification. It is the target (and often the source) side of
// a binding.
//
// Values are mutated on the UI thread; observation and weak resolution
// may happen from any goroutine, so internal state is mutex-guarded.
// Observers are invoked outside the lock.
type Object struct {
	mu           sync.Mutex
	values       map[*Property]any
	dynamic      map[*Property]bool
	observers    map[int]func(name string)
	nextObserver int
	bindings     map[*Property]Binding
	context      any
}

// NewObject creates an empty bindable object.
func NewObject() *Object {
	return &Object{
		values:    make(map[*Property]any),
		dynamic:   make(map[*Property]bool),
		observers: make(map[int]func(string)),
		bindings:  make(map[*Property]Binding),
	}
}

// GetValue returns the stored value for property, or the property's
// default when nothing has been stored.
func (o *Object) GetValue(property *Property) any {
	if property == nil {
		return nil
	}
	o.mu.Lock()
	v, ok := o.values[property]
	o.mu.Unlock()
	if !ok {
		return property.DefaultValue()
	}
	return v
}

// SetValue stores a user-originated value. The declared conversion is
// applied, any dynamic value provider is detached, and a two-way or
// one-way-to-source binding on the property pushes the new value back
// to its source.
func (o *Object) SetValue(property *Property, value any) {
	if property == nil {
		return
	}
	o.SetValueCore(property, value, SetValueClearDynamic)
	o.mu.Lock()
	b := o.bindings[property]
	o.mu.Unlock()
	if b != nil {
		b.Reapply(true)
	}
}

// SetValueCore stores a value with explicit flags. Binding writes use
// SetValueConverted without SetValueClearDynamic. A value rejected by
// the property's declared conversion is logged and dropped; the stored
// value is left unchanged.
func (o *Object) SetValueCore(property *Property, value any, flags SetValueFlags) {
	if property == nil {
		return
	}
	if flags&SetValueConverted == 0 {
		converted, ok := property.TryConvert(value)
		if !ok {
			errors.Warn(warnCategory, "%v can not be converted to type %v", value, property.ReturnType())
			return
		}
		value = converted
	}

	o.mu.Lock()
	old, had := o.values[property]
	same := had && valuesEqual(old, value)
	o.values[property] = value
	if flags&SetValueClearDynamic != 0 {
		delete(o.dynamic, property)
	}
	var observers []func(string)
	if !same {
		observers = o.snapshotObserversLocked()
	}
	o.mu.Unlock()

	for _, fn := range observers {
		fn(property.Name())
	}
}

// SetDynamicValue stores a value supplied by a dynamic provider such as
// a style or resource lookup, marking the property so a later
// user-originated SetValue detaches the provider while binding writes
// leave it attached.
func (o *Object) SetDynamicValue(property *Property, value any) {
	if property == nil {
		return
	}
	converted, ok := property.TryConvert(value)
	if !ok {
		errors.Warn(warnCategory, "%v can not be converted to type %v", value, property.ReturnType())
		return
	}

	o.mu.Lock()
	old, had := o.values[property]
	same := had && valuesEqual(old, converted)
	o.values[property] = converted
	o.dynamic[property] = true
	var observers []func(string)
	if !same {
		observers = o.snapshotObserversLocked()
	}
	o.mu.Unlock()

	for _, fn := range observers {
		fn(property.Name())
	}
}

// HasDynamicValue reports whether the property's current value came from
// a dynamic provider that is still attached.
func (o *Object) HasDynamicValue(property *Property) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dynamic[property]
}

// ClearValue removes the stored value so the property reverts to its
// default, and detaches any dynamic value provider.
func (o *Object) ClearValue(property *Property) {
	if property == nil {
		return
	}
	o.mu.Lock()
	_, had := o.values[property]
	delete(o.values, property)
	delete(o.dynamic, property)
	var observers []func(string)
	if had {
		observers = o.snapshotObserversLocked()
	}
	o.mu.Unlock()

	for _, fn := range observers {
		fn(property.Name())
	}
}

// ObservePropertyChanged registers a change observer and returns an
// unsubscribe function. Observers receive the name of the changed
// property and may be invoked from any goroutine that mutates the
// object.
func (o *Object) ObservePropertyChanged(fn func(name string)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	o.mu.Lock()
	id := o.nextObserver
	o.nextObserver++
	o.observers[id] = fn
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		delete(o.observers, id)
		o.mu.Unlock()
	}
}

// snapshotObserversLocked copies the observer list for invocation
// outside the lock. Callers must hold o.mu.
func (o *Object) snapshotObserversLocked() []func(string) {
	if len(o.observers) == 0 {
		return nil
	}
	observers := make([]func(string), 0, len(o.observers))
	for _, fn := range o.observers {
		observers = append(observers, fn)
	}
	return observers
}

// BindingContext returns the ambient source object bindings on this
// object resolve against when they carry no fixed source.
func (o *Object) BindingContext() any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.context
}

// SetBindingContext replaces the ambient source object and re-applies
// every binding against it. A binding already bound to a different
// live source is single-pair by contract, so it is replaced with a
// fresh clone bound to the new context.
func (o *Object) SetBindingContext(context any) {
	o.mu.Lock()
	o.context = context
	bound := make(map[*Property]Binding, len(o.bindings))
	for p, b := range o.bindings {
		bound[p] = b
	}
	o.mu.Unlock()

	for property, b := range bound {
		b.Unapply()
		err := b.Apply(context, o, property)
		if err == nil {
			continue
		}
		clone := b.Clone()
		o.mu.Lock()
		o.bindings[property] = clone
		o.mu.Unlock()
		if err := clone.Apply(context, o, property); err != nil {
			errors.Report(&errors.BindingError{
				Op:       "binding.SetBindingContext",
				Kind:     errors.KindApply,
				Property: property.Name(),
				Err:      err,
			})
		}
	}
}

// Bind attaches a binding to property and applies it against the
// current binding context. A binding already attached to the property
// is unapplied first.
func (o *Object) Bind(property *Property, b Binding) error {
	if property == nil || b == nil {
		return ErrNilBinding
	}
	o.mu.Lock()
	prev := o.bindings[property]
	o.bindings[property] = b
	context := o.context
	o.mu.Unlock()

	if prev != nil {
		prev.Unapply()
	}
	if err := b.Apply(context, o, property); err != nil {
		o.mu.Lock()
		delete(o.bindings, property)
		o.mu.Unlock()
		return err
	}
	return nil
}

// Unbind detaches and unapplies the binding on property, if any.
func (o *Object) Unbind(property *Property) {
	o.mu.Lock()
	b := o.bindings[property]
	delete(o.bindings, property)
	o.mu.Unlock()
	if b != nil {
		b.Unapply()
	}
}

// Binding returns the binding currently attached to property, or nil.
func (o *Object) Binding(property *Property) Binding {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bindings[property]
}
