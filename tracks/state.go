package tracks

import (
	"time"

	"github.com/rs/xid"
)

// PlayMode describes what a track is doing at a tick boundary.
type PlayMode int

const (
	// Play means the track is actively producing audio.
	Play PlayMode = iota

	// Pause means the track is suspended and may be resumed.
	Pause

	// Stop means the track was halted by its owner and cannot be resumed.
	Stop

	// End means the track ran out of audio to play.
	End
)

// Name of the play mode.
func (m PlayMode) String() string {
	switch m {
	case Play:
		return "Play"
	case Pause:
		return "Pause"
	case Stop:
		return "Stop"
	case End:
		return "End"
	default:
		return "Unknown"
	}
}

// IsDone returns true if no further playback can happen in this mode.
func (m PlayMode) IsDone() bool {
	return m == Stop || m == End
}

// State is a point-in-time snapshot of one track's playback. The playback
// engine owns the live values; a State is a copy taken at a tick boundary and
// is only valid for that tick.
type State struct {
	// Mode is the discrete playback mode.
	Mode PlayMode

	// Volume scales the track's samples, 1.0 being unity gain.
	Volume float64

	// Position is the playback position within the source.
	Position time.Duration

	// PlayTime is the cumulative time this track has spent in Play mode.
	// It freezes while the track is paused or stopped, which in turn
	// freezes the track's local timed events.
	PlayTime time.Duration

	// Loops counts how many times the track has wrapped back to its start.
	Loops int

	// Err holds the playback error that stopped the track, if any.
	Err error
}

// A Handle names one track. Handles are shared, comparable by identity, and
// carry no playback state themselves.
type Handle struct {
	id   string
	name string
}

// NewHandle creates a handle with a fresh unique ID.
func NewHandle(name string) *Handle {
	return &Handle{
		id:   xid.New().String(),
		name: name,
	}
}

// ID returns the unique ID of the track.
func (h *Handle) ID() string {
	return h.id
}

// Name returns the human-readable name of the track.
func (h *Handle) Name() string {
	return h.name
}
