package domain

type (
	// ThreadId is an opaque conversation correlation id supplied by the
	// caller. The core never creates or validates it, only threads it
	// through backend calls.
	ThreadId = string

	FileId   = string
	Filename = string

	// DraftMessage is the transient text buffer owned by the composer.
	// Never persisted, never shared across threads.
	DraftMessage = string
)
