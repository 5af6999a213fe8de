package model

import (
    "strings"
    "time"
)

// Priority ranks a task.  Values are stored upper-case.
type Priority string

const (
    PriorityLow    Priority = "LOW"
    PriorityMedium Priority = "MEDIUM"
    PriorityHigh   Priority = "HIGH"
)

// Status is the lifecycle state of a task.
type Status string

const (
    StatusTodo       Status = "TODO"
    StatusInProgress Status = "IN_PROGRESS"
    StatusDone       Status = "DONE"
)

// Task is the demo resource exposed under /api/tasks.  It corresponds to a
// row in the `tasks` table when the MySQL store is used.
//
// Fields:
//  ID          – UUID assigned on creation.
//  Title       – short summary, required.
//  Description – optional free text.
//  Priority    – LOW, MEDIUM or HIGH.
//  Status      – TODO, IN_PROGRESS or DONE.
//  CreatedAt   – creation time (UTC).
//  UpdatedAt   – time of last change (UTC).
type Task struct {
    ID          string    `json:"id"`
    Title       string    `json:"title"`
    Description string    `json:"description"`
    Priority    Priority  `json:"priority"`
    Status      Status    `json:"status"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}

// ParsePriority normalizes s; an empty string yields MEDIUM.
func ParsePriority(s string) (Priority, bool) {
    switch p := Priority(strings.ToUpper(strings.TrimSpace(s))); p {
    case "":
        return PriorityMedium, true
    case PriorityLow, PriorityMedium, PriorityHigh:
        return p, true
    }
    return "", false
}

// ParseStatus normalizes s; an empty string yields TODO.
func ParseStatus(s string) (Status, bool) {
    switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
    case "":
        return StatusTodo, true
    case StatusTodo, StatusInProgress, StatusDone:
        return st, true
    }
    return "", false
}
