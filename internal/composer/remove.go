package composer

import (
	"context"
	"log/slog"

	"github.com/quillchat-dev/quillchat/internal/metrics"
	"github.com/quillchat-dev/quillchat/shared/domain"
)

// DeleteClient removes one ingested file from a thread.
type DeleteClient interface {
	DeleteFile(ctx context.Context, threadId domain.ThreadId, fileId domain.FileId) error
}

// AttachmentRemoval requests deletion of one attachment and triggers a
// resync. The displayed list changes only once resync confirms; there
// is no optimistic local removal.
type AttachmentRemoval struct {
	client   DeleteClient
	notifier Notifier
	resync   ResyncFunc
}

func NewAttachmentRemoval(client DeleteClient, notifier Notifier, resync ResyncFunc) *AttachmentRemoval {
	if notifier == nil {
		notifier = SlogNotifier{}
	}
	return &AttachmentRemoval{client, notifier, resync}
}

// Remove deletes one attachment by id. The id is not validated against
// the local view; the backend owns membership.
func (a *AttachmentRemoval) Remove(ctx context.Context, threadId domain.ThreadId, fileId domain.FileId) {
	if threadId == "" {
		return
	}

	if err := a.client.DeleteFile(ctx, threadId, fileId); err != nil {
		slog.Error("attachment deletion failed", "thread", threadId, "file", fileId, "error", err)
		metrics.DeletionsTotal.WithLabelValues("failure").Inc()
		a.notifier.Error("Failed to remove attachment")
		return
	}
	metrics.DeletionsTotal.WithLabelValues("success").Inc()

	if err := a.resync(ctx); err != nil {
		slog.Error("resync after deletion failed", "thread", threadId, "error", err)
	}
}
