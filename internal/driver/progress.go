package driver

import "time"

// Stage identifies the step a batch item is in.
type Stage string

const (
	// StageCache is the cache lookup.
	StageCache Stage = "cache"
	// StageConvert is tokenizing and serializing.
	StageConvert Stage = "convert"
)

// Status describes the state of a batch item.
type Status string

const (
	// StatusQueued indicates the item is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the item is currently converting.
	StatusWorking Status = "working"
	// StatusDone indicates the item is done.
	StatusDone Status = "done"
	// StatusCached indicates the item was served from the cache.
	StatusCached Status = "cached"
	// StatusError indicates the conversion failed.
	StatusError Status = "error"
)

// Event reports progress for one batch item.
type Event struct {
	Item    int    // index in the request slice
	Label   string // Request.Name
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel; the owner closes it after
// ConvertBatch returns.
type ChannelSink chan<- Event

func (s ChannelSink) OnEvent(ev Event) { s <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
