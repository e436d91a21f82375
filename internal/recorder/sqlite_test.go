package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSQLiteRecorder_RecordAndSummarize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	r, err := NewSQLiteRecorder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	defer r.Close()

	events := []*Event{
		{MessageID: "m1", ChatID: 1, Kind: KindSignal, Tag: "BTC", Direction: "LONG", Entry: "65000"},
		{MessageID: "m1", ChatID: 1, Kind: KindSignal, Tag: "ETH", Direction: "LONG", Entry: "2412"},
		{MessageID: "m2", ChatID: 2, Kind: KindCancel, Tag: "SOL"},
		{MessageID: "m3", ChatID: 2, Kind: KindGlobalCancel, Tag: "ALL"},
		{MessageID: "m4", ChatID: 3, Kind: KindNoPrice, Tag: "XYZ"},
	}
	for _, evt := range events {
		if err := r.RecordEvent(evt); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}

	sum, err := r.Summarize(time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Signals != 2 || sum.Cancels != 2 || sum.NoPrice != 1 {
		t.Errorf("unexpected summary: %+v", sum)
	}

	// nothing before a future cutoff
	empty, err := r.Summarize(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if empty.Signals != 0 || empty.Cancels != 0 || empty.NoPrice != 0 {
		t.Errorf("expected empty summary, got %+v", empty)
	}
}
