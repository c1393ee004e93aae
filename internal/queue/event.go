// Package queue defines the change events published to the message broker
// and the background consumer that turns them into an audit log.
package queue

// ResourceEvent is published after every successful mutation. It carries
// enough for downstream consumers to log or trigger notifications without
// querying the primary database.
type ResourceEvent struct {
	Resource   string `json:"resource"`    // "booking", "host", "property", "review"
	Action     string `json:"action"`      // "created", "updated", "deleted"
	ID         string `json:"id"`          // id of the affected record
	OccurredAt string `json:"occurred_at"` // RFC3339 UTC timestamp
}
