package models

import "errors"

// Sentinel errors for the service layer. Handlers translate these to HTTP
// status codes in the app-level error handler.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoTextContent     = errors.New("no usable text content")
	ErrProvider          = errors.New("provider error")
	ErrValidation        = errors.New("validation error")
	ErrNoCandidates      = errors.New("no candidates to evaluate")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrRateLimited       = errors.New("rate limit exceeded")
)
