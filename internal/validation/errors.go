package validation

import "errors"

// ErrNoSupportedFiles is returned when a selection contains no file
// matching the allow-list; the batch is blocked entirely.
var ErrNoSupportedFiles = errors.New("no supported files in selection")

// ErrInvalidMimeType is returned when a MIME type cannot be determined
// for a picked file.
var ErrInvalidMimeType = errors.New("invalid MIME type")

// ErrFileTooLarge is returned when a picked file exceeds the size limit.
var ErrFileTooLarge = errors.New("file too large")
