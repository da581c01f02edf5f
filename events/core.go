package events

// CoreEvent enumerates transport and session-level occurrences. Their
// payloads are opaque to the scheduler; the driver posts them with whatever
// data the transport produced.
type CoreEvent int

const (
	// CoreSpeakingStateUpdate fires when a user's speaking state changes.
	CoreSpeakingStateUpdate CoreEvent = iota

	// CoreVoiceTick fires once per voice frame with the set of speaking
	// users.
	CoreVoiceTick

	// CoreRtpPacket fires on receipt of an RTP packet.
	CoreRtpPacket

	// CoreRtcpPacket fires on receipt of an RTCP packet.
	CoreRtcpPacket

	// CoreClientDisconnect fires when a client leaves the session.
	CoreClientDisconnect

	// CoreDriverConnect fires when the driver establishes a connection.
	CoreDriverConnect

	// CoreDriverReconnect fires when the driver re-establishes a
	// connection.
	CoreDriverReconnect

	// CoreDriverDisconnect fires when the driver loses its connection.
	CoreDriverDisconnect
)

// Name of the core event.
func (e CoreEvent) String() string {
	switch e {
	case CoreSpeakingStateUpdate:
		return "SpeakingStateUpdate"
	case CoreVoiceTick:
		return "VoiceTick"
	case CoreRtpPacket:
		return "RtpPacket"
	case CoreRtcpPacket:
		return "RtcpPacket"
	case CoreClientDisconnect:
		return "ClientDisconnect"
	case CoreDriverConnect:
		return "DriverConnect"
	case CoreDriverReconnect:
		return "DriverReconnect"
	case CoreDriverDisconnect:
		return "DriverDisconnect"
	default:
		return "Unknown"
	}
}
