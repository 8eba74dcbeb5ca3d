package binding

import (
	"fmt"
	"reflect"

	"github.com/go-drift/databind/pkg/errors"
	"github.com/go-drift/databind/pkg/platform"
	"github.com/go-drift/databind/pkg/weakref"
)

// Part describes one hop of a compiled source path: an accessor for the
// intermediate object the hop observes, and the property name whose
// change notifications invalidate everything past the hop.
//
// For a path like p.Address.City the parts are
//
//	{Resolve: func(p *Person) any { return p },         Name: "Address"}
//	{Resolve: func(p *Person) any { return p.Address }, Name: "City"}
//
// Resolve must return untyped nil (not a typed nil pointer) when the
// hop is absent.
type Part[S any] struct {
	// Resolve returns the intermediate object this hop observes,
	// reached from the source.
	Resolve func(source *S) any
	// Name is the property whose change notifications schedule a
	// re-apply. An empty notification always matches.
	Name string
}

// TypedBinding propagates values between a source property reached
// through compiled accessors and a target [Object] property. It is the
// compiled counterpart of a string-path binding: no path parsing or
// reflection-based member lookup happens per update.
//
// Configuration fields must be set before the first Apply and not
// changed afterward. All lifecycle methods must run on the UI thread;
// change notifications from other goroutines are marshaled there by the
// registered dispatcher before any state is touched.
type TypedBinding[S, P any] struct {
	getter func(*S) (P, bool)
	setter func(*S, P)
	parts  []Part[S]

	// Mode selects the direction of value flow. ModeDefault resolves
	// against the target property's declared default mode.
	Mode Mode
	// Converter transforms values between the two sides before type
	// coercion.
	Converter Converter
	// ConverterParameter is handed to the converter on every call.
	ConverterParameter any
	// StringFormat is a fmt.Sprintf format applied to pulled values
	// when the target property's type is string.
	StringFormat string
	// Source, when non-nil, overrides the ambient binding context as
	// the source object.
	Source any
	// UpdateSourceEventName names the target-side event that should
	// trigger a push to the source, for hosts that drive source updates
	// from events rather than property changes.
	UpdateSourceEventName string

	applied    bool
	weakSource weakref.Ref[S]
	weakTarget weakref.Ref[Object]
	property   *Property
	unsubs     []func()
}

// NewTypedBinding creates a binding from a compiled getter, an optional
// setter, and the hop descriptors for each intermediate object the path
// traverses. The getter reports ok=false when an intermediate reference
// or key is missing; the binding treats that as "value unavailable" and
// falls back to the target property's default rather than erroring. A
// nil setter disables source-directed writes.
//
// NewTypedBinding panics if getter is nil.
func NewTypedBinding[S, P any](getter func(source *S) (value P, ok bool), setter func(source *S, value P), parts []Part[S]) *TypedBinding[S, P] {
	if getter == nil {
		panic("binding: NewTypedBinding requires a getter")
	}
	return &TypedBinding[S, P]{
		getter: getter,
		setter: setter,
		parts:  parts,
	}
}

// Apply binds to (target, property), resolving the source object from
// the fixed Source override or, failing that, from context. Calling
// Apply again with the same pair refreshes the binding; a different
// live source or target returns ErrBindingReused.
func (b *TypedBinding[S, P]) Apply(context any, target *Object, property *Property) error {
	if target == nil || property == nil {
		return ErrNilTarget
	}
	resolved := context
	if b.Source != nil {
		resolved = b.Source
	}
	// Three-way branch: nil, wrong type, and correct type all collapse
	// into a typed pointer that is nil unless the source matches.
	source, _ := resolved.(*S)

	if prev, ok := b.weakTarget.Get(); ok && prev != target {
		return ErrBindingReused
	}
	if prev, ok := b.weakSource.Get(); ok && prev != source {
		return ErrBindingReused
	}

	b.weakTarget = weakref.Make(target)
	b.weakSource = weakref.Make(source)
	b.property = property
	b.applied = true
	b.applyCore(source, target, property, false)
	return nil
}

// Reapply re-enters the apply path with the stored pair. It is a no-op
// before the first successful Apply. A collected target unapplies the
// binding; a collected source applies as if the source were nil, so the
// target falls back to the property default.
func (b *TypedBinding[S, P]) Reapply(fromTarget bool) {
	if !b.applied {
		return
	}
	target, ok := b.weakTarget.Get()
	if !ok {
		b.Unapply()
		return
	}
	source, _ := b.weakSource.Get()
	b.applyCore(source, target, b.property, fromTarget)
}

// Unapply unsubscribes every hop listener and returns the binding to
// the unapplied state. Idempotent. The bound pair is remembered weakly,
// so a later Apply against a different live pair still fails.
func (b *TypedBinding[S, P]) Unapply() {
	b.teardownParts()
	b.applied = false
}

// Clone returns a fresh unapplied binding with the same getter, setter,
// mode, converter, and hop list. The hop list is copied; function
// references are shared.
func (b *TypedBinding[S, P]) Clone() Binding {
	parts := make([]Part[S], len(b.parts))
	copy(parts, b.parts)
	clone := NewTypedBinding(b.getter, b.setter, parts)
	clone.Mode = b.Mode
	clone.Converter = b.Converter
	clone.ConverterParameter = b.ConverterParameter
	clone.StringFormat = b.StringFormat
	clone.Source = b.Source
	clone.UpdateSourceEventName = b.UpdateSourceEventName
	return clone
}

// applyCore propagates one value through the binding. source is nil
// when the resolved source was absent, the wrong type, or collected.
func (b *TypedBinding[S, P]) applyCore(source *S, target *Object, property *Property, fromTarget bool) {
	mode := b.Mode.effective(property)
	if mode == OneWay && fromTarget {
		// One-way bindings never accept target-initiated writes.
		return
	}

	needsPull := mode == OneWay || (mode == TwoWay && !fromTarget)
	needsPush := mode == OneWayToSource || (mode == TwoWay && fromTarget)

	// Subscriptions track the live object graph on every pull-capable
	// apply, even when this particular apply writes nothing.
	if source != nil && (mode == OneWay || mode == TwoWay) {
		b.subscribeParts(source)
	}

	if needsPull {
		value := property.DefaultValue()
		if source != nil {
			if v, ok := b.getter(source); ok {
				value = any(v)
			}
		}
		value = b.GetSourceValue(value, property.ReturnType())
		converted, ok := tryConvert(value, property.ReturnType(), property, true)
		if !ok {
			errors.Warn(warnCategory, "%v can not be converted to type %v", value, property.ReturnType())
			return
		}
		target.SetValueCore(property, converted, SetValueConverted)
	}

	if needsPush && b.setter != nil && source != nil {
		sourceType := reflect.TypeFor[P]()
		value := b.GetTargetValue(target.GetValue(property), sourceType)
		converted, ok := tryConvert(value, sourceType, nil, false)
		if !ok {
			errors.Warn(warnCategory, "%v can not be converted to type %v", value, sourceType)
			return
		}
		if converted == nil {
			if !isNilable(sourceType) {
				errors.Warn(warnCategory, "nil can not be converted to type %v", sourceType)
				return
			}
			var zero P
			b.setter(source, zero)
			return
		}
		typed, ok := converted.(P)
		if !ok {
			errors.Warn(warnCategory, "%v can not be converted to type %v", converted, sourceType)
			return
		}
		b.setter(source, typed)
	}
}

// GetSourceValue runs a pulled value through the converter and the
// string format. It is the forward half of the value pipeline;
// converter-aware wrappers may call it directly.
func (b *TypedBinding[S, P]) GetSourceValue(value any, targetType reflect.Type) any {
	if b.Converter != nil {
		value = b.Converter.Convert(value, targetType, b.ConverterParameter)
	}
	if b.StringFormat != "" && targetType == stringType {
		return fmt.Sprintf(b.StringFormat, value)
	}
	return value
}

// GetTargetValue runs a target value through the backward converter on
// its way to the source.
func (b *TypedBinding[S, P]) GetTargetValue(value any, sourceType reflect.Type) any {
	if b.Converter != nil {
		value = b.Converter.ConvertBack(value, sourceType, b.ConverterParameter)
	}
	return value
}

// subscribeParts installs hop listeners against source, in declared
// order. All previous listeners are torn down first, from index 0, so a
// hop whose intermediate object changed identity never keeps a stale
// listener.
func (b *TypedBinding[S, P]) subscribeParts(source *S) {
	b.teardownParts()
	for i := range b.parts {
		part := &b.parts[i]
		if part.Resolve == nil {
			continue
		}
		value := part.Resolve(source)
		if isNilValue(value) {
			// A nil intermediate breaks the rest of the chain. Later
			// hops stay unsubscribed until a re-apply finds a value.
			return
		}
		observable, ok := value.(Observable)
		if !ok {
			// Nothing to observe; the hop still resolves for the getter.
			continue
		}
		name := part.Name
		unsub := observable.ObservePropertyChanged(func(changed string) {
			if changed != "" && changed != name {
				return
			}
			// The listener never mutates binding state inline; it only
			// requests a re-apply on the UI thread.
			if !platform.Dispatch(func() { b.Reapply(false) }) {
				errors.Warn(warnCategory, "no dispatcher registered; change notification for %q dropped", name)
			}
		})
		b.unsubs = append(b.unsubs, unsub)
	}
}

// teardownParts removes all hop listeners in reverse order.
func (b *TypedBinding[S, P]) teardownParts() {
	for i := len(b.unsubs) - 1; i >= 0; i-- {
		b.unsubs[i]()
	}
	b.unsubs = nil
}
