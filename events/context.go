package events

import (
	"fmt"

	"github.com/Erk-/songbird/tracks"
)

// ContextKind tells a handler which class of firing it is responding to.
type ContextKind int

const (
	// ContextTimed is a time-based firing.
	ContextTimed ContextKind = iota

	// ContextTrack is a track-state transition firing.
	ContextTrack

	// ContextCore is a core occurrence firing.
	ContextCore
)

// Name of the context kind.
func (k ContextKind) String() string {
	switch k {
	case ContextTimed:
		return "Timed"
	case ContextTrack:
		return "Track"
	case ContextCore:
		return "Core"
	default:
		return "Unknown"
	}
}

// A TrackSnapshot pairs a track handle with the state it had at the tick
// boundary.
type TrackSnapshot struct {
	Handle *tracks.Handle
	State  tracks.State
}

// A TrackTransition is one discrete state change observed during a tick.
type TrackTransition struct {
	Kind   TrackEvent
	Handle *tracks.Handle
	Old    tracks.State
	New    tracks.State
}

// A CorePayload is one core occurrence together with its opaque data.
type CorePayload struct {
	Kind CoreEvent
	Data any
}

// An EventContext is the read-only view handed to a handler when it fires.
// It is built fresh for each tick and borrows track state from the playback
// engine, so it is only valid until Act returns.
//
// For a timed firing on a global store, Tracks holds every track relevant to
// the tick; on a local store it holds exactly the owning track. For a track
// firing on a global store, Transitions holds every matching transition of
// the tick; on a local store it holds exactly one. For a core firing, Core
// holds the payload.
type EventContext struct {
	Kind   ContextKind
	Global bool

	Tracks      []TrackSnapshot
	Transitions []TrackTransition
	Core        *CorePayload
}

func (c *EventContext) String() string {
	switch c.Kind {
	case ContextTimed:
		return fmt.Sprintf("Timed(%d tracks)", len(c.Tracks))
	case ContextTrack:
		if len(c.Transitions) == 0 {
			return "Track()"
		}
		return fmt.Sprintf("Track(%v, %d tracks)",
			c.Transitions[0].Kind, len(c.Transitions))
	case ContextCore:
		return fmt.Sprintf("Core(%v)", c.Core.Kind)
	default:
		return "Unknown"
	}
}
