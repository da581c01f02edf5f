package events

import (
	"time"

	"github.com/rs/xid"
)

// An EntryID identifies one binding within a store.
type EntryID string

// EventData is the binding of one Event to one Handler, plus the private
// scheduling state the store keeps for it. The store exclusively owns its
// EventData; bindings are never shared between stores.
type EventData struct {
	id      EntryID
	evt     Event
	handler Handler

	// remaining is the wait until the next fire of a timed descriptor.
	// Track and core descriptors are stateless edge detectors and do not
	// use it.
	remaining time.Duration

	fireCount uint64
	removed   bool
}

func newEventData(evt Event, handler Handler) *EventData {
	d := &EventData{
		id:      EntryID(xid.New().String()),
		evt:     evt,
		handler: handler,
	}
	d.arm()

	return d
}

// ID returns the binding's ID within its store.
func (d *EventData) ID() EntryID {
	return d.id
}

// Event returns the descriptor currently governing the binding.
func (d *EventData) Event() Event {
	return d.evt
}

// FireCount returns how many times the binding has fired.
func (d *EventData) FireCount() uint64 {
	return d.fireCount
}

// arm resets the scheduling state as if the binding were freshly registered.
func (d *EventData) arm() {
	switch d.evt.Kind {
	case KindPeriodic:
		if d.evt.HasPhase {
			d.remaining = d.evt.Phase
		} else {
			d.remaining = d.evt.Period
		}
	case KindDelayed:
		d.remaining = d.evt.Delay
	default:
		d.remaining = 0
	}
}

// replace swaps the governing descriptor and re-arms from now.
func (d *EventData) replace(evt Event) {
	d.evt = evt
	d.arm()
}

// rearmAfterFire computes the wait until the next fire of a periodic
// binding. The leftover of the tick that caused the fire counts toward the
// next period, so successive fire instants stay spaced by exactly one
// period. If a stall swallowed several whole periods, those fires are
// skipped rather than replayed, and the wait folds back into (0, period].
func (d *EventData) rearmAfterFire() {
	period := d.evt.Period
	next := d.remaining + period

	if next <= 0 {
		next = period - ((-d.remaining) % period)
		if next <= 0 {
			next = period
		}
	}

	d.remaining = next
}
