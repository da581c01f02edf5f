package events

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/Erk-/songbird/tracks"
)

func emptySnapshot() Snapshot {
	return Snapshot{}
}

func transitionSnapshot(
	kind TrackEvent,
	handles ...*tracks.Handle,
) Snapshot {
	snap := Snapshot{}
	for _, h := range handles {
		snap.Transitions = append(snap.Transitions, TrackTransition{
			Kind:   kind,
			Handle: h,
		})
	}

	return snap
}

var _ = Describe("EventStore", func() {
	var (
		mockCtrl *gomock.Controller
		handler  *MockHandler
		store    *EventStore
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		handler = NewMockHandler(mockCtrl)
		store = NewGlobalStore("driver")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should fire a periodic binding once per elapsed period", func() {
		store.Register(Periodic(20*time.Millisecond), handler)

		handler.EXPECT().Act(gomock.Any()).Return(nil).Times(5)

		for i := 0; i < 5; i++ {
			err := store.Tick(20*time.Millisecond, emptySnapshot())
			Expect(err).To(BeNil())
		}

		Expect(store.Len()).To(Equal(1))
	})

	It("should honor the phase of a periodic binding", func() {
		store.Register(
			PeriodicWithPhase(30*time.Millisecond, 10*time.Millisecond),
			handler)

		handler.EXPECT().Act(gomock.Any()).Return(nil)
		store.Tick(10*time.Millisecond, emptySnapshot())

		store.Tick(20*time.Millisecond, emptySnapshot())

		handler.EXPECT().Act(gomock.Any()).Return(nil)
		store.Tick(10*time.Millisecond, emptySnapshot())
	})

	It("should keep periodic fire instants spaced by one period across tick boundaries", func() {
		// Ticks of 20ms; the ideal fire instants are 30, 60 and 90ms,
		// so the binding fires on ticks 2, 3 and 5.
		fired := []int{}
		tick := 0

		store.Register(Periodic(30*time.Millisecond),
			HandlerFunc(func(_ *EventContext) *Event {
				fired = append(fired, tick)
				return nil
			}))

		for tick = 1; tick <= 6; tick++ {
			store.Tick(20*time.Millisecond, emptySnapshot())
		}

		Expect(fired).To(Equal([]int{2, 3, 5}))
	})

	It("should fire a timed binding at most once per tick after a stall", func() {
		store.Register(Periodic(20*time.Millisecond), handler)

		handler.EXPECT().Act(gomock.Any()).Return(nil).Times(1)

		store.Tick(500*time.Millisecond, emptySnapshot())
	})

	It("should fire a delayed binding once and remove it", func() {
		store.Register(Delayed(50*time.Millisecond), handler)

		store.Tick(30*time.Millisecond, emptySnapshot())

		handler.EXPECT().Act(gomock.Any()).Return(nil)
		store.Tick(30*time.Millisecond, emptySnapshot())

		Expect(store.Len()).To(Equal(0))

		store.Tick(30*time.Millisecond, emptySnapshot())
	})

	It("should remove a binding whose handler returns Cancel", func() {
		h := tracks.NewHandle("song")

		store.Register(OnTrack(TrackEnd), handler)

		cancel := Cancel()
		handler.EXPECT().Act(gomock.Any()).Return(&cancel)

		store.Tick(20*time.Millisecond, transitionSnapshot(TrackEnd, h))

		Expect(store.Len()).To(Equal(0))

		store.Tick(20*time.Millisecond, transitionSnapshot(TrackEnd, h))
	})

	It("should re-arm a binding with the returned override descriptor", func() {
		h := tracks.NewHandle("song")

		store.Register(OnTrack(TrackEnd), handler)

		override := Delayed(40 * time.Millisecond)
		handler.EXPECT().Act(gomock.Any()).Return(&override)
		store.Tick(20*time.Millisecond, transitionSnapshot(TrackEnd, h))

		// The binding now behaves like a fresh Delayed(40ms): further
		// transitions are ignored and it fires on elapsed time.
		store.Tick(20*time.Millisecond, transitionSnapshot(TrackEnd, h))

		handler.EXPECT().Act(gomock.Any()).
			DoAndReturn(func(ctx *EventContext) *Event {
				Expect(ctx.Kind).To(Equal(ContextTimed))
				return nil
			})
		store.Tick(20*time.Millisecond, emptySnapshot())

		Expect(store.Len()).To(Equal(0))
	})

	It("should keep a track binding armed when its handler returns nil", func() {
		h := tracks.NewHandle("song")

		store.Register(OnTrack(TrackPause), handler)

		handler.EXPECT().Act(gomock.Any()).Return(nil).Times(2)

		store.Tick(20*time.Millisecond, transitionSnapshot(TrackPause, h))
		store.Tick(20*time.Millisecond, emptySnapshot())
		store.Tick(20*time.Millisecond, transitionSnapshot(TrackPause, h))

		Expect(store.Len()).To(Equal(1))
	})

	It("should batch same-kind transitions into one invocation", func() {
		h1 := tracks.NewHandle("t1")
		h2 := tracks.NewHandle("t2")
		h3 := tracks.NewHandle("t3")

		store.Register(OnTrack(TrackEnd), handler)

		handler.EXPECT().Act(gomock.Any()).
			DoAndReturn(func(ctx *EventContext) *Event {
				Expect(ctx.Kind).To(Equal(ContextTrack))
				Expect(ctx.Global).To(BeTrue())
				Expect(ctx.Transitions).To(HaveLen(3))
				return nil
			})

		store.Tick(20*time.Millisecond,
			transitionSnapshot(TrackEnd, h1, h2, h3))
	})

	It("should hand timed bindings the full track batch", func() {
		h1 := tracks.NewHandle("t1")
		h2 := tracks.NewHandle("t2")

		store.Register(Periodic(20*time.Millisecond), handler)

		snap := Snapshot{
			Tracks: []TrackSnapshot{
				{Handle: h1, State: tracks.State{Mode: tracks.Play}},
				{Handle: h2, State: tracks.State{Mode: tracks.Pause}},
			},
		}

		handler.EXPECT().Act(gomock.Any()).
			DoAndReturn(func(ctx *EventContext) *Event {
				Expect(ctx.Kind).To(Equal(ContextTimed))
				Expect(ctx.Tracks).To(HaveLen(2))
				return nil
			})

		store.Tick(20*time.Millisecond, snap)
	})

	It("should fire a core binding once per matching payload", func() {
		store.Register(OnCore(CoreRtpPacket), handler)

		snap := Snapshot{
			Core: []CorePayload{
				{Kind: CoreRtpPacket, Data: "p1"},
				{Kind: CoreVoiceTick, Data: "v"},
				{Kind: CoreRtpPacket, Data: "p2"},
			},
		}

		seen := []any{}
		handler.EXPECT().Act(gomock.Any()).
			DoAndReturn(func(ctx *EventContext) *Event {
				Expect(ctx.Kind).To(Equal(ContextCore))
				seen = append(seen, ctx.Core.Data)
				return nil
			}).Times(2)

		store.Tick(20*time.Millisecond, snap)

		Expect(seen).To(Equal([]any{"p1", "p2"}))
	})

	It("should never fire a core binding on a local store", func() {
		local := NewLocalStore("song")
		local.Register(OnCore(CoreRtpPacket), handler)

		snap := Snapshot{
			Core: []CorePayload{{Kind: CoreRtpPacket, Data: "p"}},
		}

		for i := 0; i < 10; i++ {
			err := local.Tick(20*time.Millisecond, snap)
			Expect(err).To(BeNil())
		}

		Expect(local.Len()).To(Equal(1))
	})

	It("should dispatch fireable bindings in insertion order", func() {
		order := []string{}

		store.Register(Periodic(20*time.Millisecond),
			HandlerFunc(func(_ *EventContext) *Event {
				order = append(order, "first")
				return nil
			}))
		store.Register(Delayed(20*time.Millisecond),
			HandlerFunc(func(_ *EventContext) *Event {
				order = append(order, "second")
				return nil
			}))

		store.Tick(20*time.Millisecond, emptySnapshot())

		Expect(order).To(Equal([]string{"first", "second"}))
	})

	It("should isolate a handler panic from the other bindings", func() {
		store.Register(Periodic(20*time.Millisecond),
			HandlerFunc(func(_ *EventContext) *Event {
				panic("handler bug")
			}))

		handler.EXPECT().Act(gomock.Any()).Return(nil).Times(2)
		store.Register(Periodic(20*time.Millisecond), handler)

		err := store.Tick(20*time.Millisecond, emptySnapshot())
		Expect(err).NotTo(BeNil())

		// Default persistence applied to the panicking binding: it is
		// periodic, so it stays armed and fires again.
		Expect(store.Len()).To(Equal(2))

		err = store.Tick(20*time.Millisecond, emptySnapshot())
		Expect(err).NotTo(BeNil())
	})

	It("should remove a delayed binding whose handler panics", func() {
		store.Register(Delayed(20*time.Millisecond),
			HandlerFunc(func(_ *EventContext) *Event {
				panic("handler bug")
			}))

		err := store.Tick(20*time.Millisecond, emptySnapshot())
		Expect(err).NotTo(BeNil())

		Expect(store.Len()).To(Equal(0))
	})

	It("should cancel bindings externally", func() {
		id := store.Register(OnTrack(TrackEnd), handler)

		Expect(store.Cancel(id)).To(BeTrue())
		Expect(store.Cancel(id)).To(BeFalse())
		Expect(store.Len()).To(Equal(0))
	})

	It("should store a Cancel descriptor without ever firing it", func() {
		id := store.Register(Cancel(), handler)

		store.Tick(time.Hour, emptySnapshot())

		Expect(store.Len()).To(Equal(1))
		Expect(store.Cancel(id)).To(BeTrue())
	})

	It("should summarize its bindings in insertion order", func() {
		store.Register(Periodic(20*time.Millisecond), handler)
		store.Register(OnTrack(TrackEnd), handler)

		summaries := store.Entries()

		Expect(summaries).To(HaveLen(2))
		Expect(summaries[0].Descriptor).To(Equal("Periodic(20ms)"))
		Expect(summaries[1].Descriptor).To(Equal("Track(End)"))
	})
})
