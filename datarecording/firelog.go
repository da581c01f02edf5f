package datarecording

import (
	"sync"
	"time"

	"github.com/Erk-/songbird/events"
)

// FireLogTable is the table fire records are written to.
const FireLogTable = "event_fires"

// A FireRecord is one row of the fire trace, describing a single handler
// invocation.
type FireRecord struct {
	WallTime   float64
	Store      string
	EntryID    string
	Descriptor string
	Context    string
	FireCount  uint64
}

// FireLog is an events hook that records every firing into a DataRecorder.
// Attach it to each store that should be traced.
type FireLog struct {
	mu       sync.Mutex
	recorder DataRecorder
}

// NewFireLog creates a FireLog writing into recorder and creates the fire
// table.
func NewFireLog(recorder DataRecorder) *FireLog {
	l := &FireLog{recorder: recorder}
	recorder.CreateTable(FireLogTable, FireRecord{})

	return l
}

// Func records the firing once the handler has returned.
func (l *FireLog) Func(ctx events.HookCtx) {
	if ctx.Pos != events.HookPosAfterFire {
		return
	}

	data, ok := ctx.Item.(*events.EventData)
	if !ok {
		return
	}

	record := FireRecord{
		WallTime:   float64(time.Now().UnixNano()) / 1e9,
		EntryID:    string(data.ID()),
		Descriptor: data.Event().String(),
		FireCount:  data.FireCount(),
	}

	if store, ok := ctx.Domain.(*events.EventStore); ok {
		record.Store = store.Name()
	}

	if evtCtx, ok := ctx.Detail.(*events.EventContext); ok {
		record.Context = evtCtx.String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.recorder.InsertData(FireLogTable, record)
}
