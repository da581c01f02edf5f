package events

import (
	"log"
)

// EventLogger is a hook that prints information about every firing
type EventLogger struct {
	LogHookBase
}

// NewEventLogger returns a new EventLogger which will write into the logger
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger
	return h
}

// Func writes the firing information into the logger
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeFire {
		return
	}

	data, ok := ctx.Item.(*EventData)
	if !ok {
		return
	}

	evtCtx, ok := ctx.Detail.(*EventContext)
	if !ok {
		return
	}

	if store, ok := ctx.Domain.(*EventStore); ok {
		h.Printf("%s, %s, %s, fire %d",
			store.Name(), data.Event(), evtCtx, data.FireCount())
	} else {
		h.Printf("%s, %s, fire %d", data.Event(), evtCtx, data.FireCount())
	}
}
