// Package driver contains the frame-tick scheduler that advances the event
// stores of a voice connection. It owns the driver-wide global store and one
// local store per attached track, derives discrete track transitions by
// comparing state snapshots between frames, and forwards core occurrences
// posted by the transport.
package driver

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Erk-/songbird/events"
	"github.com/Erk-/songbird/tracks"
)

// DefaultFrameInterval is the audio frame cadence the scheduler ticks at.
const DefaultFrameInterval = 20 * time.Millisecond

// A Source is the playback collaborator for one track. The scheduler reads a
// state snapshot from it once per frame and never mutates it.
type Source interface {
	State() tracks.State
}

// trackBinding ties one track to its local store and to the edge-detection
// memory for it. The memory is evicted together with the binding when the
// track is removed.
type trackBinding struct {
	handle *tracks.Handle
	source Source
	store  *events.EventStore
	prev   tracks.State
}

// Scheduler advances the global and per-track event stores once per audio
// frame. All store mutation happens inside Advance, which must only be
// called from one goroutine (Run does this).
type Scheduler struct {
	mu sync.Mutex

	global   *events.EventStore
	bindings []*trackBinding
	pending  []events.CorePayload

	interval time.Duration
	logger   *log.Logger
}

// NewScheduler creates a Scheduler ticking at the default frame interval.
func NewScheduler() *Scheduler {
	s := new(Scheduler)
	s.global = events.NewGlobalStore("driver")
	s.interval = DefaultFrameInterval
	s.logger = log.New(os.Stderr, "", log.LstdFlags)

	return s
}

// WithFrameInterval overrides the tick cadence.
func (s *Scheduler) WithFrameInterval(interval time.Duration) *Scheduler {
	s.interval = interval
	return s
}

// WithLogger sets the logger that dispatch faults are reported to.
func (s *Scheduler) WithLogger(logger *log.Logger) *Scheduler {
	s.logger = logger
	return s
}

// GlobalStore returns the driver-wide store.
func (s *Scheduler) GlobalStore() *events.EventStore {
	return s.global
}

// AddGlobalEvent registers a binding on the driver-wide store.
func (s *Scheduler) AddGlobalEvent(
	evt events.Event,
	handler events.Handler,
) events.EntryID {
	return s.global.Register(evt, handler)
}

// AddTrack attaches a track and returns its local store. The current state
// of the source becomes the baseline for edge detection, so transitions that
// happened before attachment never fire.
func (s *Scheduler) AddTrack(handle *tracks.Handle, source Source) *events.EventStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	binding := &trackBinding{
		handle: handle,
		source: source,
		store:  events.NewLocalStore(handle.Name()),
		prev:   source.State(),
	}
	s.bindings = append(s.bindings, binding)

	return binding.store
}

// TrackStore returns the local store of an attached track, or nil.
func (s *Scheduler) TrackStore(handle *tracks.Handle) *events.EventStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bindings {
		if b.handle == handle {
			return b.store
		}
	}

	return nil
}

// RemoveTrack detaches a track, destroying its local store and evicting its
// edge-detection memory. It returns whether the track was attached.
func (s *Scheduler) RemoveTrack(handle *tracks.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bindings {
		if b.handle != handle {
			continue
		}

		s.bindings = append(s.bindings[:i], s.bindings[i+1:]...)

		return true
	}

	return false
}

// PostCore queues a core occurrence for delivery on the next frame. Core
// occurrences only ever fire on the global store.
func (s *Scheduler) PostCore(kind events.CoreEvent, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, events.CorePayload{Kind: kind, Data: data})
}

// Stores returns the global store followed by all local stores, for
// inspection surfaces.
func (s *Scheduler) Stores() []*events.EventStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	stores := make([]*events.EventStore, 0, len(s.bindings)+1)
	stores = append(stores, s.global)

	for _, b := range s.bindings {
		stores = append(stores, b.store)
	}

	return stores
}

// Advance performs one frame. It snapshots every track, derives the
// transitions since the previous frame, ticks the global store with the full
// batch and each local store with its own track's play-time delta, and
// updates the edge-detection memory. Dispatch faults from all stores are
// joined into the returned error; they never abort the frame.
func (s *Scheduler) Advance(elapsed time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := make([]events.TrackSnapshot, 0, len(s.bindings))
	currents := make([]tracks.State, 0, len(s.bindings))

	var transitions []events.TrackTransition

	for _, b := range s.bindings {
		cur := b.source.State()
		currents = append(currents, cur)
		snapshots = append(snapshots, events.TrackSnapshot{
			Handle: b.handle,
			State:  cur,
		})
		transitions = append(transitions, diffStates(b.handle, b.prev, cur)...)
	}

	var faults []error

	globalSnap := events.Snapshot{
		Tracks:      snapshots,
		Transitions: transitions,
		Core:        s.pending,
	}
	s.pending = nil

	if err := s.global.Tick(elapsed, globalSnap); err != nil {
		faults = append(faults, err)
	}

	for i, b := range s.bindings {
		cur := currents[i]

		localElapsed := cur.PlayTime - b.prev.PlayTime
		if localElapsed < 0 {
			localElapsed = 0
		}

		localSnap := events.Snapshot{
			Tracks:      snapshots[i : i+1],
			Transitions: diffStates(b.handle, b.prev, cur),
		}

		if err := b.store.Tick(localElapsed, localSnap); err != nil {
			faults = append(faults, err)
		}

		b.prev = cur
	}

	return errors.Join(faults...)
}

// Run drives Advance from a frame ticker until the context ends. Faults are
// logged and the loop keeps going; a misbehaving handler never stops the
// driver.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now

			if err := s.Advance(elapsed); err != nil {
				s.logger.Printf("event dispatch fault: %v", err)
			}
		}
	}
}

// diffStates derives the discrete transitions between two snapshots of one
// track. A mode change yields the event matching the new mode, a loop
// counter increment yields Loop, and a newly appeared error yields Error.
func diffStates(
	handle *tracks.Handle,
	old, cur tracks.State,
) []events.TrackTransition {
	var out []events.TrackTransition

	if cur.Mode != old.Mode {
		var kind events.TrackEvent

		switch cur.Mode {
		case tracks.Play:
			kind = events.TrackPlay
		case tracks.Pause:
			kind = events.TrackPause
		case tracks.Stop:
			kind = events.TrackStop
		case tracks.End:
			kind = events.TrackEnd
		}

		out = append(out, events.TrackTransition{
			Kind:   kind,
			Handle: handle,
			Old:    old,
			New:    cur,
		})
	}

	if cur.Loops > old.Loops {
		out = append(out, events.TrackTransition{
			Kind:   events.TrackLoop,
			Handle: handle,
			Old:    old,
			New:    cur,
		})
	}

	if cur.Err != nil && old.Err == nil {
		out = append(out, events.TrackTransition{
			Kind:   events.TrackError,
			Handle: handle,
			Old:    old,
			New:    cur,
		})
	}

	return out
}
