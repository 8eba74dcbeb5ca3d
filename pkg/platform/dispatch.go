// Package platform connects the binding engine to its host: the UI
// thread dispatcher that marshals work onto the thread owning all
// binding mutation.
//
// Change notifications may arrive on any goroutine, but bindings only
// mutate state on the UI thread. Hosts register a dispatch function
// once during initialization; the binding engine schedules every
// notification-driven re-application through it. For tests and headless
// hosts, [Queue] provides a deterministic serial dispatcher.
package platform

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to schedule callbacks
// on the UI thread. This should be called once by the host during
// initialization. Pass nil to unregister.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was successfully scheduled, false if no
// dispatch function is registered or the callback is nil.
//
// Dispatch is fire-and-forget: callbacks run asynchronously and there is
// no ordering guarantee across source threads.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}
