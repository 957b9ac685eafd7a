package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing callsign, grid square pattern mismatch).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnreadableFile is returned when an import payload is not decodable
// text. The whole import is rejected; nothing is parsed.
var ErrUnreadableFile = errors.New("cannot read file")

// ErrMalformedFile is returned when an import payload is readable text but
// structurally unusable (e.g. a CSV with no data rows below the header).
// Handlers should map this, and ErrUnreadableFile, to HTTP 400.
var ErrMalformedFile = errors.New("file format incorrect")
