// Package queue defines the events the server emits and the RabbitMQ
// plumbing that publishes and consumes them.
package queue

import (
    "encoding/json"
    "time"
)

// Event types.
const (
    TypeEchoReceived = "echo.received"
    TypeTaskCreated  = "task.created"
)

// Event is the envelope written to the queue.  Payload holds one of the
// typed payloads below, already JSON-encoded.
type Event struct {
    Type       string          `json:"type"`
    OccurredAt time.Time       `json:"occurred_at"`
    Payload    json.RawMessage `json:"payload"`
}

// EchoReceived is published for every successful POST /api/echo.
type EchoReceived struct {
    ID         string    `json:"id"`
    Message    string    `json:"message"`
    ReceivedAt time.Time `json:"received_at"`
}

// TaskCreated is published when a task is stored.
type TaskCreated struct {
    TaskID    string    `json:"task_id"`
    Title     string    `json:"title"`
    Priority  string    `json:"priority"`
    CreatedAt time.Time `json:"created_at"`
}

// NewEvent wraps payload in an Event of the given type.
func NewEvent(eventType string, payload any) (Event, error) {
    raw, err := json.Marshal(payload)
    if err != nil {
        return Event{}, err
    }
    return Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: raw}, nil
}
