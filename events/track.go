package events

// TrackEvent enumerates the discrete track-state transitions an event binding
// can wait for.
type TrackEvent int

const (
	// TrackPlay fires when a track starts or resumes playing.
	TrackPlay TrackEvent = iota

	// TrackPause fires when a track is paused.
	TrackPause

	// TrackStop fires when a track is manually stopped.
	TrackStop

	// TrackEnd fires when a track runs out of audio.
	TrackEnd

	// TrackLoop fires when a track wraps back to its start.
	TrackLoop

	// TrackError fires when a track fails with a playback error.
	TrackError
)

// Name of the track event.
func (e TrackEvent) String() string {
	switch e {
	case TrackPlay:
		return "Play"
	case TrackPause:
		return "Pause"
	case TrackStop:
		return "Stop"
	case TrackEnd:
		return "End"
	case TrackLoop:
		return "Loop"
	case TrackError:
		return "Error"
	default:
		return "Unknown"
	}
}
