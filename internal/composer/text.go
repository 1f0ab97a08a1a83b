package composer

import (
	"strings"

	"github.com/quillchat-dev/quillchat/internal/markdown"
	"github.com/quillchat-dev/quillchat/shared/domain"
)

// TextComposer owns the draft message text and decides submit-vs-newline
// on key input. The draft is the only state variable.
type TextComposer struct {
	draft    domain.DraftMessage
	dispatch DispatchFunc

	// turnInProgress is set by the caller while a conversation turn is
	// running; submission is blocked entirely for its duration.
	turnInProgress bool

	preview *markdown.Renderer
}

func NewTextComposer(dispatch DispatchFunc) *TextComposer {
	return &TextComposer{
		dispatch: dispatch,
		preview:  markdown.New(),
	}
}

// Draft returns the current draft text.
func (c *TextComposer) Draft() domain.DraftMessage {
	return c.draft
}

// SetDraft is the edit transition: the draft tracks input verbatim,
// with no validation or trimming while editing.
func (c *TextComposer) SetDraft(text string) {
	c.draft = text
}

// SetTurnInProgress marks the surrounding conversation turn as running.
func (c *TextComposer) SetTurnInProgress(inProgress bool) {
	c.turnInProgress = inProgress
}

// HandleEnter interprets an Enter key press. Shift inserts a line break
// and never submits; plain Enter submits.
func (c *TextComposer) HandleEnter(shift bool) {
	if shift {
		c.draft += "\n"
		return
	}
	c.Submit()
}

// Submit forwards the trimmed draft to the dispatcher and clears the
// draft. No-op on whitespace-only drafts or while a turn is running.
// Attachments are untouched either way.
func (c *TextComposer) Submit() {
	if c.turnInProgress {
		return
	}
	trimmed := strings.TrimSpace(c.draft)
	if trimmed == "" {
		return
	}
	c.dispatch(trimmed)
	c.draft = ""
}

// Preview renders the draft to sanitized HTML for the presentation
// layer. The draft itself is never mutated.
func (c *TextComposer) Preview() (string, error) {
	return c.preview.Render(c.draft)
}
