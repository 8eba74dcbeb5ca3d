package errors

import (
	"fmt"
	"os"
)

// LogHandler is a Handler that logs errors and warnings to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a BindingError to stderr.
func (h *LogHandler) HandleError(err *BindingError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[databind error] %s [%s]", err.Op, err.Kind)
		if err.Property != "" {
			fmt.Fprintf(os.Stderr, " property=%s", err.Property)
		}
		fmt.Fprintf(os.Stderr, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(os.Stderr, "[databind error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[databind panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[databind panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleWarning logs a Warning to stderr.
func (h *LogHandler) HandleWarning(w *Warning) {
	if w == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[databind warning] [%s] %s\n", w.Category, w.Message)
}
