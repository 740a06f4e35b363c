package domain

import "errors"

// ErrValidation is returned when caller-supplied input fails a bounds or
// format check (e.g. party size outside 1–20).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrLoad is returned when the venue data source is missing or unreadable.
// It is the only error class surfaced to the user; row- and field-level
// problems are absorbed during normalization.
// Handlers should map this to HTTP 503 Service Unavailable.
var ErrLoad = errors.New("load failure")
