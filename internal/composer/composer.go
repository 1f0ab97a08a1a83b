// Package composer implements the client-side controller of the chat
// message composer: batch upload orchestration, attachment removal and
// the draft text state machine, composed inside one container.
//
// The extraction backend, the message dispatcher and the resync source
// are external collaborators injected through interfaces and hooks.
package composer

import (
	"github.com/quillchat-dev/quillchat/shared/config"
	"github.com/quillchat-dev/quillchat/shared/domain"
)

// BackendClient is the full collaborator surface the composer needs.
// *apiclient.APIClient satisfies it.
type BackendClient interface {
	IngestClient
	DeleteClient
}

// Hooks are the caller-supplied collaborators.
type Hooks struct {
	// Resync refreshes the authoritative attachment list; invoked after
	// every upload batch and confirmed deletion.
	Resync ResyncFunc
	// Dispatch hands a finished message to the conversation turn.
	Dispatch DispatchFunc
	// Notifier surfaces user-visible notices. Optional; defaults to the
	// structured log.
	Notifier Notifier
	// ResetPicker clears file-picker input state after a batch. Optional.
	ResetPicker func()
}

// Composer ties the three components together and holds the
// caller-visible view of the attachment set. The view is not the source
// of truth; it is replaced wholesale by every resync.
type Composer struct {
	Uploads *UploadOrchestrator
	Removal *AttachmentRemoval
	Text    *TextComposer

	attachments domain.Attachments
}

func New(client BackendClient, cfg config.Public, hooks Hooks) *Composer {
	notifier := hooks.Notifier
	if notifier == nil {
		notifier = SlogNotifier{}
	}

	return &Composer{
		Uploads: NewUploadOrchestrator(
			client,
			notifier,
			hooks.Resync,
			hooks.ResetPicker,
			cfg.AllowedDocumentMimeTypes,
			cfg.AllowedSpreadsheetMimeTypes,
			cfg.MaxAttachmentSizeBytes,
		),
		Removal: NewAttachmentRemoval(client, notifier, hooks.Resync),
		Text:    NewTextComposer(hooks.Dispatch),
	}
}

// SetAttachments replaces the attachment view with authoritative state.
// Always a replacement, never a merge, so a resync that overlaps a
// deletion stays safe.
func (c *Composer) SetAttachments(list domain.Attachments) {
	c.attachments = append(domain.Attachments(nil), list...)
}

// Attachments returns the current view of the attachment set.
func (c *Composer) Attachments() domain.Attachments {
	return c.attachments
}
