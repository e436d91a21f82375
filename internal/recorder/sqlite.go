package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the bot's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			message_id TEXT,
			chat_id    INTEGER,
			kind       TEXT NOT NULL,
			tag        TEXT,
			direction  TEXT,
			entry      TEXT,
			note       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON signal_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_events_kind ON signal_events(kind)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvent(evt *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_events
		(timestamp, message_id, chat_id, kind, tag, direction, entry, note)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.MessageID, evt.ChatID,
		evt.Kind, evt.Tag, evt.Direction, evt.Entry, evt.Note,
	)
	return err
}

func (r *SQLiteRecorder) Summarize(since time.Time) (*Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(
		`SELECT kind, COUNT(*) FROM signal_events WHERE timestamp >= ? GROUP BY kind`,
		since.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	defer rows.Close()

	sum := &Summary{}
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("summarize scan: %w", err)
		}
		switch kind {
		case KindSignal:
			sum.Signals += count
		case KindCancel, KindGlobalCancel:
			sum.Cancels += count
		case KindNoPrice:
			sum.NoPrice += count
		}
	}
	return sum, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
