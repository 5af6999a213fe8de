// Package repository defines task persistence and the sentinel errors that
// handlers translate into HTTP status codes.
package repository

import "errors"

// ErrTaskNotFound is returned when no task has the requested ID.
// Handlers should translate this into an HTTP 404 response.
var ErrTaskNotFound = errors.New("task not found")

// ErrConflict is returned when a task with the same ID already exists.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
