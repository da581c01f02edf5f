package events

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventData", func() {
	noop := HandlerFunc(func(_ *EventContext) *Event {
		return nil
	})

	It("should arm a periodic binding with one full period", func() {
		d := newEventData(Periodic(20*time.Millisecond), noop)

		Expect(d.remaining).To(Equal(20 * time.Millisecond))
	})

	It("should arm a periodic binding with its phase", func() {
		d := newEventData(
			PeriodicWithPhase(20*time.Millisecond, 5*time.Millisecond), noop)

		Expect(d.remaining).To(Equal(5 * time.Millisecond))
	})

	It("should arm a delayed binding with its delay", func() {
		d := newEventData(Delayed(50*time.Millisecond), noop)

		Expect(d.remaining).To(Equal(50 * time.Millisecond))
	})

	It("should carry the tick leftover into the next period", func() {
		d := newEventData(Periodic(30*time.Millisecond), noop)

		d.remaining = -10 * time.Millisecond
		d.rearmAfterFire()

		Expect(d.remaining).To(Equal(20 * time.Millisecond))
	})

	It("should skip whole periods lost to a stall without bursting", func() {
		d := newEventData(Periodic(30*time.Millisecond), noop)

		d.remaining = -70 * time.Millisecond
		d.rearmAfterFire()

		Expect(d.remaining).To(Equal(20 * time.Millisecond))
	})

	It("should wait one full period after firing exactly on time", func() {
		d := newEventData(Periodic(30*time.Millisecond), noop)

		d.remaining = 0
		d.rearmAfterFire()

		Expect(d.remaining).To(Equal(30 * time.Millisecond))
	})

	It("should re-arm as freshly registered on replacement", func() {
		d := newEventData(OnTrack(TrackEnd), noop)

		d.replace(Delayed(40 * time.Millisecond))

		Expect(d.evt.Kind).To(Equal(KindDelayed))
		Expect(d.remaining).To(Equal(40 * time.Millisecond))
	})

	It("should ignore the phase after the first fire", func() {
		d := newEventData(
			PeriodicWithPhase(30*time.Millisecond, 5*time.Millisecond), noop)

		d.remaining = 0
		d.rearmAfterFire()

		Expect(d.remaining).To(Equal(30 * time.Millisecond))
	})
})
