package driver

import "time"

// Status captures progress state of one file.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being analysed.
	StatusWorking Status = "working"
	// StatusDone indicates the analysis finished.
	StatusDone Status = "done"
	// StatusError indicates the file could not be analysed.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Status  Status
	Cached  bool
	Errors  int
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
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
