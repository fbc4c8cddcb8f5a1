package driver

import "time"

// Status captures the progress state of one file.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being scanned.
	StatusWorking Status = "working"
	// StatusDone indicates the scan finished without errors.
	StatusDone Status = "done"
	// StatusError indicates a load failure or at least one error diagnostic.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File   string
	Status Status
	Cached bool
	// Problems is the number of diagnostics; set on done and error events.
	Problems int
	Err      error
	Elapsed  time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; CheckPaths calls OnEvent from its workers.
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

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
