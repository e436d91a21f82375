package recorder

import "time"

// Event kinds written to the audit trail.
const (
	KindSignal       = "SIGNAL"
	KindCancel       = "CANCEL"
	KindGlobalCancel = "GLOBAL_CANCEL"
	KindNoPrice      = "NO_PRICE"
)

// Event is one audit record: a signal turned into a plan, a cancel
// notice, or a failed price lookup. This is an activity trail only;
// no open-position state is ever kept.
type Event struct {
	MessageID string // correlation id of the originating message
	ChatID    int64
	Kind      string
	Tag       string
	Direction string
	Entry     string // formatted entry price, empty for cancels
	Note      string
}

// Summary aggregates recent activity for the daily digest.
type Summary struct {
	Signals int
	Cancels int
	NoPrice int
}

// Recorder persists the audit trail.
type Recorder interface {
	RecordEvent(evt *Event) error
	Summarize(since time.Time) (*Summary, error)
	Close() error
}
