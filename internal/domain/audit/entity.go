package audit

import (
	"encoding/json"
	"time"
)

type Action string

const (
	ActionCreate        Action = "CREATE"
	ActionUpdate        Action = "UPDATE"
	ActionDelete        Action = "DELETE"
	ActionIgnorePoint   Action = "IGNORE_POINT"
	ActionUnignorePoint Action = "UNIGNORE_POINT"
)

// Entity types recorded in the audit log
const (
	EntityManualPunch  = "manual_punch"
	EntityIgnoredPunch = "ignored_punch"
	EntityComment      = "comment"
	EntityEvent        = "event"
)

// Record is one append-only audit log entry. Before and After are JSON snapshots.
type Record struct {
	ID         string
	Actor      string
	Action     Action
	EntityType string
	EntityID   *string
	Before     json.RawMessage
	After      json.RawMessage
	CreatedAt  time.Time
}
