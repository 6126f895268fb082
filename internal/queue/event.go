// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityQueueName is the durable queue activity events are published to.
const ActivityQueueName = "directory.activity"

// ActivityEvent is published when a visitor passes the verification gate.
// It mirrors the courts_log row so downstream consumers can log or
// report without querying the primary database.
type ActivityEvent struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"` // LOGIN
	Email      string `json:"email"`
	SessionID  string `json:"session_id"`
	RemoteAddr string `json:"remote_addr,omitempty"`
	OccurredAt string `json:"occurred_at"` // RFC 3339, UTC
}

// KindLogin is the only activity the court directory records.
const KindLogin = "LOGIN"
