package events

import (
	"fmt"
	"time"
)

// EventKind enumerates the classes of occurrence an Event can describe.
type EventKind int

const (
	// KindPeriodic fires repeatedly on a fixed period.
	KindPeriodic EventKind = iota

	// KindDelayed fires exactly once after a delay.
	KindDelayed

	// KindTrack fires on a discrete track-state transition.
	KindTrack

	// KindCore fires on a transport or session-level occurrence. Core
	// events only fire on a global store.
	KindCore

	// KindCancel is a sentinel returned by handlers to remove their own
	// binding. It never fires.
	KindCancel
)

// Name of the event kind.
func (k EventKind) String() string {
	switch k {
	case KindPeriodic:
		return "Periodic"
	case KindDelayed:
		return "Delayed"
	case KindTrack:
		return "Track"
	case KindCore:
		return "Core"
	case KindCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// An Event describes a class of occurrence to watch for. Events are immutable
// values; use the constructor functions to build them.
type Event struct {
	Kind EventKind

	// Period is the repeat interval of a periodic event.
	Period time.Duration

	// Phase is the wait before the first fire of a periodic event. It is
	// only meaningful when HasPhase is set; otherwise the first fire
	// happens after one full period.
	Phase    time.Duration
	HasPhase bool

	// Delay is the one-shot wait of a delayed event.
	Delay time.Duration

	// Track is the transition a track event waits for.
	Track TrackEvent

	// Core is the occurrence a core event waits for.
	Core CoreEvent
}

// Periodic creates an event that fires every period, first firing after one
// full period.
func Periodic(period time.Duration) Event {
	return Event{Kind: KindPeriodic, Period: period}
}

// PeriodicWithPhase creates an event that fires every period, first firing
// after phase.
func PeriodicWithPhase(period, phase time.Duration) Event {
	return Event{Kind: KindPeriodic, Period: period, Phase: phase, HasPhase: true}
}

// Delayed creates an event that fires exactly once after delay.
func Delayed(delay time.Duration) Event {
	return Event{Kind: KindDelayed, Delay: delay}
}

// OnTrack creates an event that fires on a track-state transition.
func OnTrack(evt TrackEvent) Event {
	return Event{Kind: KindTrack, Track: evt}
}

// OnCore creates an event that fires on a core occurrence. Core events must
// be registered globally; on a local store they are stored but never fire.
func OnCore(evt CoreEvent) Event {
	return Event{Kind: KindCore, Core: evt}
}

// Cancel creates the sentinel a handler returns to remove its own binding.
func Cancel() Event {
	return Event{Kind: KindCancel}
}

// IsGlobalOnly returns true if the event can only ever fire on a global
// store.
func (e Event) IsGlobalOnly() bool {
	return e.Kind == KindCore
}

// IsTimed returns true if the event fires based on elapsed time rather than
// on a discrete occurrence.
func (e Event) IsTimed() bool {
	return e.Kind == KindPeriodic || e.Kind == KindDelayed
}

func (e Event) String() string {
	switch e.Kind {
	case KindPeriodic:
		if e.HasPhase {
			return fmt.Sprintf("Periodic(%v, %v)", e.Period, e.Phase)
		}
		return fmt.Sprintf("Periodic(%v)", e.Period)
	case KindDelayed:
		return fmt.Sprintf("Delayed(%v)", e.Delay)
	case KindTrack:
		return fmt.Sprintf("Track(%v)", e.Track)
	case KindCore:
		return fmt.Sprintf("Core(%v)", e.Core)
	case KindCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}
