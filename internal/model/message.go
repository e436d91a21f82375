package model

import "time"

// RawMessage is one inbound chat message. It is never mutated after creation.
type RawMessage struct {
	ID         string // correlation id, attached to logs and audit records
	ChatID     int64
	UserID     int64
	MessageID  int
	Text       string
	ReceivedAt time.Time
}
