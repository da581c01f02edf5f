package events

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Event", func() {
	It("should mark core events as global only", func() {
		Expect(OnCore(CoreRtpPacket).IsGlobalOnly()).To(BeTrue())
		Expect(OnTrack(TrackEnd).IsGlobalOnly()).To(BeFalse())
		Expect(Periodic(time.Second).IsGlobalOnly()).To(BeFalse())
	})

	It("should mark periodic and delayed events as timed", func() {
		Expect(Periodic(time.Second).IsTimed()).To(BeTrue())
		Expect(Delayed(time.Second).IsTimed()).To(BeTrue())
		Expect(OnTrack(TrackEnd).IsTimed()).To(BeFalse())
		Expect(OnCore(CoreVoiceTick).IsTimed()).To(BeFalse())
		Expect(Cancel().IsTimed()).To(BeFalse())
	})

	It("should describe itself", func() {
		Expect(Periodic(20 * time.Millisecond).String()).
			To(Equal("Periodic(20ms)"))
		Expect(PeriodicWithPhase(20*time.Millisecond, 5*time.Millisecond).
			String()).To(Equal("Periodic(20ms, 5ms)"))
		Expect(Delayed(50 * time.Millisecond).String()).
			To(Equal("Delayed(50ms)"))
		Expect(OnTrack(TrackLoop).String()).To(Equal("Track(Loop)"))
		Expect(OnCore(CoreDriverConnect).String()).
			To(Equal("Core(DriverConnect)"))
		Expect(Cancel().String()).To(Equal("Cancel"))
	})
})

var _ = Describe("UntimedEvent", func() {
	It("should extract the occurrence kind of untimed descriptors", func() {
		u, ok := UntimedFromEvent(OnTrack(TrackLoop))
		Expect(ok).To(BeTrue())
		Expect(u.IsCore()).To(BeFalse())
		Expect(u).To(Equal(UntimedTrack(TrackLoop)))

		u, ok = UntimedFromEvent(OnCore(CoreVoiceTick))
		Expect(ok).To(BeTrue())
		Expect(u.IsCore()).To(BeTrue())
		Expect(u).To(Equal(UntimedCore(CoreVoiceTick)))
	})

	It("should reject timed and sentinel descriptors", func() {
		_, ok := UntimedFromEvent(Periodic(time.Second))
		Expect(ok).To(BeFalse())

		_, ok = UntimedFromEvent(Cancel())
		Expect(ok).To(BeFalse())
	})
})
