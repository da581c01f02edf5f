package events

// A Handler responds to one fired event. A single Handler may be registered
// against several bindings and several stores, so implementations must be
// safe for concurrent invocation and must keep any private state inside
// themselves, never in the store.
//
// Act receives a read-only context describing the firing. The context and
// everything it references are only valid until Act returns; a handler must
// not retain them.
//
// The return value governs what happens to the binding that fired:
// nil keeps the current schedule, Cancel() removes the binding, and any
// other descriptor replaces the binding's descriptor and re-arms it as if it
// had been freshly registered, starting from this invocation.
type Handler interface {
	Act(ctx *EventContext) *Event
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx *EventContext) *Event

// Act calls f.
func (f HandlerFunc) Act(ctx *EventContext) *Event {
	return f(ctx)
}
