// Package errors provides structured error reporting and warning
// logging for the databind engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindBinding indicates a binding lifecycle error, such as reusing a
	// binding across distinct source/target pairs.
	KindBinding
	// KindConvert indicates a value conversion or coercion failure.
	KindConvert
	// KindApply indicates a failure while applying a binding.
	KindApply
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindBinding:
		return "binding"
	case KindConvert:
		return "convert"
	case KindApply:
		return "apply"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BindingError represents a structured error in the databind engine.
type BindingError struct {
	// Op is the operation that failed (e.g., "binding.Apply").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Property is the bound property name, if applicable.
	Property string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BindingError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("%s [%s] property=%s: %v", e.Op, e.Kind, e.Property, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "binding.Reapply").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Warning represents a non-fatal diagnostic, such as a skipped write
// after a coercion failure. Warnings never interrupt the binding; they
// exist so hosts can surface misconfigured bindings during development.
type Warning struct {
	// Category groups related warnings (e.g., "Binding").
	Category string
	// Message is the formatted warning text.
	Message string
	// Timestamp is when the warning was emitted.
	Timestamp time.Time
}

func (w *Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Category, w.Message)
}

// Handler receives errors and warnings reported by the databind engine.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BindingError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleWarning is called when a warning is emitted. It must not fail.
	HandleWarning(w *Warning)
}
