package domain

import "errors"

// ErrValidation is returned when user input fails a form rule (e.g. missing
// airport, departure in the past, return before departure).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUpstream is returned by the API client when the third-party flight API
// fails: transport error, non-2xx status, or an unsuccessful envelope.
// The results page renders the empty state for it; it is never retried.
var ErrUpstream = errors.New("upstream error")
