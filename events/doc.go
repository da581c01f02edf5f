// Package events decides when to invoke user-supplied handlers in response to
// the passage of time or to discrete playback-state changes.
//
// An event binding is composed of two parts: an Event describing the class of
// occurrence to watch for, and a Handler to call when it fires. Handlers may
// be shared between several bindings, so each invocation receives an
// EventContext describing which occurrence fired.
//
// A handler may return a replacement Event to change its own schedule.
// Returning nil keeps the current schedule, returning Cancel() removes the
// binding, and returning any other descriptor re-arms the binding as if it
// had been freshly registered with that descriptor.
//
// Bindings live in an EventStore. A global store is owned by the driver and
// is advanced once per audio frame with the states of all tracks. A local
// store is owned by one track and is advanced with that track's own playback
// time, so local timed events freeze while the track is paused or stopped.
// Core events only ever fire on a global store.
package events
