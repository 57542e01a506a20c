package batch

import "time"

// Status captures the progress state of one expression.
type Status string

const (
	// StatusQueued indicates the expression is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the expression is being evaluated.
	StatusWorking Status = "working"
	// StatusDone indicates the expression produced a value.
	StatusDone Status = "done"
	// StatusError indicates the expression failed.
	StatusError Status = "error"
)

// Event reports progress for one item of a batch.
type Event struct {
	Index   int // position in Request.Items
	Line    int
	Expr    string
	Status  Status
	Cached  bool
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; events for different items interleave.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
