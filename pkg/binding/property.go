package binding

import "reflect"

// Property describes a bindable property: its name, static type, default
// value, default binding mode, and an optional declared conversion.
//
// Properties are immutable after construction and are compared by
// identity, so they are normally declared once as package-level
// variables:
//
//	var TextProperty = binding.NewProperty[string]("Text", "",
//	    binding.WithDefaultMode(binding.TwoWay))
type Property struct {
	name         string
	returnType   reflect.Type
	defaultValue any
	defaultMode  Mode
	convert      func(any) (any, bool)
}

// PropertyOption configures a Property at construction.
type PropertyOption func(*Property)

// WithDefaultMode sets the binding mode used when a binding on this
// property is created with ModeDefault.
func WithDefaultMode(mode Mode) PropertyOption {
	return func(p *Property) {
		p.defaultMode = mode
	}
}

// WithConvert installs the property's declared conversion. It is
// consulted before generic coercion when a value flows toward the
// property; returning false rejects the value at that stage without
// failing the write outright.
func WithConvert(fn func(value any) (any, bool)) PropertyOption {
	return func(p *Property) {
		p.convert = fn
	}
}

// NewProperty creates a bindable property whose static type is T.
// The default binding mode is OneWay unless overridden.
func NewProperty[T any](name string, defaultValue T, opts ...PropertyOption) *Property {
	p := &Property{
		name:         name,
		returnType:   reflect.TypeFor[T](),
		defaultValue: defaultValue,
		defaultMode:  OneWay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the property name used in change notifications.
func (p *Property) Name() string {
	return p.name
}

// ReturnType returns the property's static type.
func (p *Property) ReturnType() reflect.Type {
	return p.returnType
}

// DefaultValue returns the value a bindable object reports for this
// property before anything has been stored.
func (p *Property) DefaultValue() any {
	return p.defaultValue
}

// DefaultMode returns the mode bindings resolve ModeDefault against.
func (p *Property) DefaultMode() Mode {
	return p.defaultMode
}

// TryConvert attempts the property's declared conversion of value. When
// no conversion is installed it accepts values assignable to the
// property's static type as-is. Nil is accepted when the static type can
// hold it.
func (p *Property) TryConvert(value any) (any, bool) {
	if p.convert != nil {
		return p.convert(value)
	}
	if value == nil {
		return nil, isNilable(p.returnType)
	}
	if reflect.TypeOf(value).AssignableTo(p.returnType) {
		return value, true
	}
	return value, false
}

// isNilable reports whether t can hold an untyped nil.
func isNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
