package binding

import "errors"

var (
	// ErrBindingReused is returned by Apply when a binding that was
	// previously bound to one source/target pair is applied to a
	// different pair. Bindings are single-pair; use Clone to bind the
	// same configuration elsewhere.
	ErrBindingReused = errors.New("binding: instance can not be reused across source/target pairs")

	// ErrNilTarget is returned by Apply when the target object or the
	// target property is nil.
	ErrNilTarget = errors.New("binding: target object and property must be non-nil")

	// ErrNilBinding is returned by Object.Bind when the property or the
	// binding is nil.
	ErrNilBinding = errors.New("binding: property and binding must be non-nil")
)
