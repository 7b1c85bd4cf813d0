package catalog

import "time"

// Stage identifies a step of loading one table file.
type Stage string

const (
	// StageRead is reading the file from disk.
	StageRead Stage = "read"
	// StageCache is the cache lookup.
	StageCache Stage = "cache"
	// StageParse is decoding the TOML.
	StageParse Stage = "parse"
	// StageStore is writing the decoded table back to the cache.
	StageStore Stage = "store"
)

// Status is the state of a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress on one table file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Records int
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent may be called from several
// goroutines at once.
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
