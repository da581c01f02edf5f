package events

// An UntimedEvent identifies one discrete occurrence kind, either a track
// transition or a core occurrence. It is comparable and is used as the
// lookup key when matching a tick's observed occurrences against the armed
// bindings.
type UntimedEvent struct {
	isCore bool
	track  TrackEvent
	core   CoreEvent
}

// UntimedTrack wraps a track event.
func UntimedTrack(evt TrackEvent) UntimedEvent {
	return UntimedEvent{track: evt}
}

// UntimedCore wraps a core event.
func UntimedCore(evt CoreEvent) UntimedEvent {
	return UntimedEvent{isCore: true, core: evt}
}

// UntimedFromEvent extracts the occurrence kind of a Track or Core event
// descriptor. The second return value is false for timed and sentinel
// descriptors.
func UntimedFromEvent(evt Event) (UntimedEvent, bool) {
	switch evt.Kind {
	case KindTrack:
		return UntimedTrack(evt.Track), true
	case KindCore:
		return UntimedCore(evt.Core), true
	default:
		return UntimedEvent{}, false
	}
}

// IsCore returns true if the occurrence is a core occurrence.
func (u UntimedEvent) IsCore() bool {
	return u.isCore
}

func (u UntimedEvent) String() string {
	if u.isCore {
		return u.core.String()
	}
	return u.track.String()
}
