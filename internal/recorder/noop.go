package recorder

import "time"

// NoopRecorder is used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvent(_ *Event) error              { return nil }
func (n *NoopRecorder) Summarize(_ time.Time) (*Summary, error) { return &Summary{}, nil }
func (n *NoopRecorder) Close() error                            { return nil }
