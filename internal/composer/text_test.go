package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTextComposer() (*TextComposer, *[]string) {
	var dispatched []string
	c := NewTextComposer(func(text string) { dispatched = append(dispatched, text) })
	return c, &dispatched
}

func TestTextComposer_EnterSubmits(t *testing.T) {
	c, dispatched := newTestTextComposer()
	c.SetDraft("  hello world \n")

	c.HandleEnter(false)

	require.Len(t, *dispatched, 1)
	assert.Equal(t, "hello world", (*dispatched)[0])
	assert.Equal(t, "", c.Draft())
}

func TestTextComposer_ShiftEnterInsertsNewline(t *testing.T) {
	c, dispatched := newTestTextComposer()
	c.SetDraft("line one")

	c.HandleEnter(true)

	assert.Empty(t, *dispatched)
	assert.Equal(t, "line one\n", c.Draft())
}

func TestTextComposer_WhitespaceOnlyDraft(t *testing.T) {
	c, dispatched := newTestTextComposer()
	c.SetDraft("   ")

	c.HandleEnter(false)

	assert.Empty(t, *dispatched)
	assert.Equal(t, "   ", c.Draft())
}

func TestTextComposer_EmptyDraft(t *testing.T) {
	c, dispatched := newTestTextComposer()

	c.Submit()

	assert.Empty(t, *dispatched)
}

func TestTextComposer_BlockedWhileTurnInProgress(t *testing.T) {
	c, dispatched := newTestTextComposer()
	c.SetDraft("hello")
	c.SetTurnInProgress(true)

	c.Submit()
	assert.Empty(t, *dispatched)
	assert.Equal(t, "hello", c.Draft())

	c.SetTurnInProgress(false)
	c.Submit()
	require.Len(t, *dispatched, 1)
	assert.Equal(t, "hello", (*dispatched)[0])
	assert.Equal(t, "", c.Draft())
}

func TestTextComposer_EditIsVerbatim(t *testing.T) {
	c, _ := newTestTextComposer()

	c.SetDraft("  raw   text  ")

	// no trimming during editing
	assert.Equal(t, "  raw   text  ", c.Draft())
}

func TestTextComposer_SubmitClearsDraftOnce(t *testing.T) {
	c, dispatched := newTestTextComposer()
	c.SetDraft("message")

	c.Submit()
	c.Submit() // empty now, must not dispatch again

	assert.Len(t, *dispatched, 1)
}

func TestTextComposer_Preview(t *testing.T) {
	c, _ := newTestTextComposer()
	c.SetDraft("*hi*")

	html, err := c.Preview()

	require.NoError(t, err)
	assert.Contains(t, html, "<em>hi</em>")
	// preview never mutates the draft
	assert.Equal(t, "*hi*", c.Draft())
}
