package entity

import "time"

// EventLog is the indexer-side record of a published domain event.
type EventLog struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time

	Op      string `gorm:"index"`
	Actor   string `gorm:"index"`
	Payload Map

	// EmittedAt is the broker timestamp of the consumed message.
	EmittedAt time.Time
}
