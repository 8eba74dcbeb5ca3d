package binding

import "reflect"

// Converter transforms values as they flow through a binding, before
// type coercion. Convert runs when a value flows from source to target;
// ConvertBack runs in the other direction. Conversions are
// culture-invariant.
//
// A converter may return the value unchanged. Returning a value that
// still fails coercion skips that single write and emits a warning.
type Converter interface {
	// Convert transforms a source value on its way to the target.
	// targetType is the bound target property's static type.
	Convert(value any, targetType reflect.Type, parameter any) any

	// ConvertBack transforms a target value on its way to the source.
	// sourceType is the static type of the source property.
	ConvertBack(value any, sourceType reflect.Type, parameter any) any
}

// FuncConverter adapts plain functions to the Converter interface.
// A nil function leaves values unchanged in that direction.
type FuncConverter struct {
	ConvertFunc     func(value any, targetType reflect.Type, parameter any) any
	ConvertBackFunc func(value any, sourceType reflect.Type, parameter any) any
}

func (c FuncConverter) Convert(value any, targetType reflect.Type, parameter any) any {
	if c.ConvertFunc == nil {
		return value
	}
	return c.ConvertFunc(value, targetType, parameter)
}

func (c FuncConverter) ConvertBack(value any, sourceType reflect.Type, parameter any) any {
	if c.ConvertBackFunc == nil {
		return value
	}
	return c.ConvertBackFunc(value, sourceType, parameter)
}
