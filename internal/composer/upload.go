package composer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quillchat-dev/quillchat/internal/metrics"
	"github.com/quillchat-dev/quillchat/internal/validation"
	"github.com/quillchat-dev/quillchat/shared/domain"
)

// IngestClient uploads one file to a type-specific extraction endpoint.
type IngestClient interface {
	ProcessDocument(ctx context.Context, file domain.PendingUpload, threadId domain.ThreadId) (*domain.AttachmentRecord, error)
	ProcessSpreadsheet(ctx context.Context, file domain.PendingUpload, threadId domain.ThreadId) (*domain.AttachmentRecord, error)
}

// UploadOrchestrator validates a file selection batch, uploads accepted
// files one at a time, accumulates the returned records and triggers a
// resync of the authoritative attachment list.
//
// Uploads within one batch are deliberately serialized: each request is
// awaited before the next starts, which bounds backend load to one
// in-flight upload per thread and keeps record order equal to selection
// order.
type UploadOrchestrator struct {
	client   IngestClient
	notifier Notifier
	resync   ResyncFunc

	// resetPicker clears the presentation layer's file-picker input
	// state after every batch. Optional.
	resetPicker func()

	documentMimes    []string
	spreadsheetMimes []string
	maxFileSize      int64

	// busy gates the upload affordance only; it never gates message
	// submission. Single writer/reader, so no lock beyond the flag.
	busy    bool
	records domain.Attachments
}

func NewUploadOrchestrator(client IngestClient, notifier Notifier, resync ResyncFunc, resetPicker func(), documentMimes, spreadsheetMimes []string, maxFileSize int64) *UploadOrchestrator {
	if notifier == nil {
		notifier = SlogNotifier{}
	}
	return &UploadOrchestrator{
		client:           client,
		notifier:         notifier,
		resync:           resync,
		resetPicker:      resetPicker,
		documentMimes:    documentMimes,
		spreadsheetMimes: spreadsheetMimes,
		maxFileSize:      maxFileSize,
	}
}

// Busy reports whether a batch is in flight.
func (o *UploadOrchestrator) Busy() bool {
	return o.busy
}

// Records returns the locally accumulated attachment records. They are
// a convenience only; final state is whatever resync returns.
func (o *UploadOrchestrator) Records() domain.Attachments {
	return o.records
}

// Upload runs one ingestion batch. Effects are visible through the
// externally-owned attachment list after resync, not a return value.
func (o *UploadOrchestrator) Upload(ctx context.Context, selection []domain.PendingUpload, threadId domain.ThreadId) {
	if o.busy {
		o.notifier.Warn("An upload is already in progress")
		return
	}

	accepted, skipped, err := validation.Partition(selection, o.documentMimes, o.spreadsheetMimes)
	if err != nil {
		// Zero supported files: block the batch before any network
		// activity.
		metrics.SkippedFilesTotal.Add(float64(skipped))
		o.notifier.Error("Unsupported file type. Please attach a PDF or Excel file.")
		return
	}
	if skipped > 0 {
		metrics.SkippedFilesTotal.Add(float64(skipped))
		o.notifier.Warn(fmt.Sprintf("%d unsupported file(s) skipped", skipped))
	}

	o.busy = true
	defer func() {
		o.busy = false
		if o.resetPicker != nil {
			o.resetPicker()
		}
		// The batch carried at least the intent to upload, so the
		// authoritative list is refreshed even after an abort.
		if err := o.resync(ctx); err != nil {
			slog.Error("resync after upload batch failed", "thread", threadId, "error", err)
		}
	}()

	for _, file := range accepted {
		if err := validation.CheckSize(file, o.maxFileSize); err != nil {
			slog.Error("upload rejected", "file", file.Filename, "thread", threadId, "error", err)
			metrics.UploadFailuresTotal.Inc()
			o.notifier.Error("Upload failed")
			return
		}

		record, err := o.ingest(ctx, file, threadId)
		if err != nil {
			// Fail fast: abort the remaining files. Files already
			// uploaded are not rolled back.
			slog.Error("upload failed, aborting batch", "file", file.Filename, "thread", threadId, "error", err)
			metrics.UploadFailuresTotal.Inc()
			o.notifier.Error("Upload failed")
			return
		}

		o.records = append(o.records, *record)
		metrics.UploadsTotal.WithLabelValues(string(record.Kind)).Inc()
	}
}

func (o *UploadOrchestrator) ingest(ctx context.Context, file domain.PendingUpload, threadId domain.ThreadId) (*domain.AttachmentRecord, error) {
	if validation.IsSpreadsheet(file.MimeType, o.spreadsheetMimes) {
		return o.client.ProcessSpreadsheet(ctx, file, threadId)
	}
	return o.client.ProcessDocument(ctx, file, threadId)
}
