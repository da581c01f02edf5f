package events

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// A Snapshot carries the external state one tick observed. The tick source
// builds it; the store only reads it.
//
// For a global store, Tracks holds the states of all tracks, Transitions
// holds every discrete change observed since the previous tick, and Core
// holds the core occurrences received since the previous tick. For a local
// store, Tracks and Transitions describe the owning track only, and Core is
// ignored.
type Snapshot struct {
	Tracks      []TrackSnapshot
	Transitions []TrackTransition
	Core        []CorePayload
}

// An EntrySummary is a read-only copy of one binding's externally visible
// state, used by inspection surfaces.
type EntrySummary struct {
	ID         EntryID
	Descriptor string
	FireCount  uint64
	Remaining  time.Duration
}

// An EventStore is the ordered collection of event bindings for one
// scheduling scope, either the whole driver (global) or one track (local).
//
// The store has exactly one mutator: the owning scope's Tick call. Handlers
// never mutate the store directly; they propose changes to their own binding
// through their return value, which Tick applies after the handler returns.
// A handler must not call Register or Cancel on the store it is firing from;
// use the return value instead.
type EventStore struct {
	HookableBase

	mu     sync.RWMutex
	name   string
	global bool
	order  []*EventData
	index  map[EntryID]*EventData
}

func newEventStore(name string, global bool) *EventStore {
	s := new(EventStore)
	s.name = name
	s.global = global
	s.index = make(map[EntryID]*EventData)

	return s
}

// NewGlobalStore creates the event store for a whole driver.
func NewGlobalStore(name string) *EventStore {
	return newEventStore(name, true)
}

// NewLocalStore creates the event store for one track.
func NewLocalStore(name string) *EventStore {
	return newEventStore(name, false)
}

// Name returns the name of the store.
func (s *EventStore) Name() string {
	return s.name
}

// Global returns true if the store is driver-scoped.
func (s *EventStore) Global() bool {
	return s.global
}

// Len returns the number of bindings currently held.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// Register adds a binding for evt and returns its ID. Registration always
// succeeds; a Core descriptor on a local store is stored but can never fire,
// and a Cancel descriptor matches no firing condition at all.
func (s *EventStore) Register(evt Event, handler Handler) EntryID {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := newEventData(evt, handler)
	s.order = append(s.order, data)
	s.index[data.id] = data

	return data.id
}

// Cancel removes the binding with the given ID, independently of any
// handler-driven cancellation. It returns whether the binding existed.
func (s *EventStore) Cancel(id EntryID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.index[id]
	if !ok {
		return false
	}

	data.removed = true
	s.compact()

	return true
}

// Entries returns read-only summaries of all bindings in insertion order.
func (s *EventStore) Entries() []EntrySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]EntrySummary, 0, len(s.order))
	for _, d := range s.order {
		summaries = append(summaries, EntrySummary{
			ID:         d.id,
			Descriptor: d.evt.String(),
			FireCount:  d.fireCount,
			Remaining:  d.remaining,
		})
	}

	return summaries
}

// firing is one pending handler invocation of a tick.
type firing struct {
	data *EventData
	ctx  *EventContext
}

// Tick advances the store by one frame. The elapsed duration is the wall
// time since the previous tick for a global store, or the track's play-time
// delta for a local store (0 while not playing). The snapshot carries the
// external state observed at the tick boundary.
//
// Tick walks the bindings once to advance timed waits and match the
// snapshot's occurrences, then dispatches the fireable bindings in insertion
// order and applies each handler's returned override. A timed binding fires
// at most once per tick no matter how many periods a stall swallowed. A
// handler panic is isolated: the binding keeps its default persistence and
// the fault is reported in the returned error.
func (s *EventStore) Tick(elapsed time.Duration, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	firings := s.collectFirings(elapsed, snap)

	var faults []error

	removedAny := false

	for _, f := range firings {
		if f.data.removed {
			// An earlier firing of the same binding this tick
			// already removed it.
			continue
		}

		override, err := s.dispatch(f)
		if err != nil {
			faults = append(faults, err)
			override = nil
		}

		if s.applyOutcome(f.data, override) {
			removedAny = true
		}
	}

	if removedAny {
		s.compact()
	}

	return errors.Join(faults...)
}

// collectFirings advances the timed waits by elapsed and matches the
// snapshot's occurrences against the armed bindings, returning the firings
// of this tick in insertion order.
func (s *EventStore) collectFirings(
	elapsed time.Duration,
	snap Snapshot,
) []firing {
	var timedCtx *EventContext

	transitionsByKind := s.groupTransitions(snap.Transitions)

	var firings []firing

	for _, d := range s.order {
		switch d.evt.Kind {
		case KindPeriodic, KindDelayed:
			d.remaining -= elapsed
			if d.remaining > 0 {
				continue
			}

			if timedCtx == nil {
				timedCtx = &EventContext{
					Kind:   ContextTimed,
					Global: s.global,
					Tracks: snap.Tracks,
				}
			}

			firings = append(firings, firing{data: d, ctx: timedCtx})

		case KindTrack:
			matched := transitionsByKind[d.evt.Track]
			if len(matched) == 0 {
				continue
			}

			firings = append(firings, firing{
				data: d,
				ctx: &EventContext{
					Kind:        ContextTrack,
					Global:      s.global,
					Transitions: matched,
				},
			})

		case KindCore:
			if !s.global {
				// Core bindings on a local store are inert.
				continue
			}

			for i := range snap.Core {
				if snap.Core[i].Kind != d.evt.Core {
					continue
				}

				firings = append(firings, firing{
					data: d,
					ctx: &EventContext{
						Kind:   ContextCore,
						Global: true,
						Core:   &snap.Core[i],
					},
				})
			}

		case KindCancel:
			// A Cancel descriptor matches nothing.
		}
	}

	return firings
}

// groupTransitions indexes the tick's transitions by kind, so that a global
// binding fires once with the full matching set.
func (s *EventStore) groupTransitions(
	transitions []TrackTransition,
) map[TrackEvent][]TrackTransition {
	if len(transitions) == 0 {
		return nil
	}

	grouped := make(map[TrackEvent][]TrackTransition)
	for _, t := range transitions {
		grouped[t.Kind] = append(grouped[t.Kind], t)
	}

	return grouped
}

// dispatch invokes one firing's handler. A panic inside the handler is
// recovered and returned as a fault so that it cannot corrupt the
// bookkeeping of the other bindings.
func (s *EventStore) dispatch(f firing) (override *Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			override = nil
			err = fmt.Errorf("event handler panicked, store %s, entry %s: %v",
				s.name, f.data.id, r)
		}
	}()

	f.data.fireCount++

	hookCtx := HookCtx{
		Domain: s,
		Pos:    HookPosBeforeFire,
		Item:   f.data,
		Detail: f.ctx,
	}
	s.InvokeHook(hookCtx)

	override = f.data.handler.Act(f.ctx)

	hookCtx.Pos = HookPosAfterFire
	s.InvokeHook(hookCtx)

	return override, nil
}

// applyOutcome applies the lifecycle rules to one binding after its handler
// returned. It reports whether the binding was removed.
func (s *EventStore) applyOutcome(d *EventData, override *Event) bool {
	if override == nil {
		switch d.evt.Kind {
		case KindPeriodic:
			d.rearmAfterFire()
		case KindDelayed:
			d.removed = true
		default:
			// Track and core bindings stay armed.
		}

		return d.removed
	}

	if override.Kind == KindCancel {
		d.removed = true
		return true
	}

	d.replace(*override)

	return false
}

// compact drops the removed bindings, preserving insertion order.
func (s *EventStore) compact() {
	kept := s.order[:0]

	for _, d := range s.order {
		if d.removed {
			delete(s.index, d.id)
			continue
		}

		kept = append(kept, d)
	}

	s.order = kept
}
