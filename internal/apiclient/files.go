package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/quillchat-dev/quillchat/shared/domain"
	internal_errors "github.com/quillchat-dev/quillchat/shared/errors"
	"github.com/quillchat-dev/quillchat/shared/utils"
)

// DeleteFile removes one ingested file from a thread.
// Success is indicated by a 2xx status only; no body contract.
func (c *APIClient) DeleteFile(ctx context.Context, threadId domain.ThreadId, fileId domain.FileId) error {
	path := fmt.Sprintf("%s/%s/%s", c.Api.FilePath, threadId, fileId)
	resp, err := c.do(ctx, "DELETE", path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to delete file %s: %s", fileId, string(bodyBytes))
	}
	return nil
}

// ListFiles fetches the authoritative attachment list for a thread.
// This is the default resync source.
func (c *APIClient) ListFiles(ctx context.Context, threadId domain.ThreadId) (domain.Attachments, error) {
	path := fmt.Sprintf("%s/%s", c.Api.FilesPath, threadId)
	resp, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &internal_errors.ErrorWithStatusCode{
			Message: fmt.Sprintf("failed to list files for thread %s", threadId), StatusCode: resp.StatusCode,
		}
	}

	var files domain.Attachments
	if err := utils.Decode(resp.Body, &files); err != nil {
		return nil, fmt.Errorf("cannot decode file list: %w", err)
	}
	return files, nil
}

// GetFile fetches a single ingested file's record.
func (c *APIClient) GetFile(ctx context.Context, threadId domain.ThreadId, fileId domain.FileId) (*domain.AttachmentRecord, error) {
	path := fmt.Sprintf("%s/%s/%s", c.Api.FilePath, threadId, fileId)
	resp, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &internal_errors.ErrorWithStatusCode{
			Message: fmt.Sprintf("file %s not found in thread %s", fileId, threadId), StatusCode: resp.StatusCode,
		}
	}

	var record domain.AttachmentRecord
	if err := utils.Decode(resp.Body, &record); err != nil {
		return nil, fmt.Errorf("cannot decode file record: %w", err)
	}
	return &record, nil
}
