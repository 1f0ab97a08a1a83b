package apiclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/microcosm-cc/bluemonday"

	"github.com/quillchat-dev/quillchat/shared/domain"
	"github.com/quillchat-dev/quillchat/shared/utils"
)

// extractedTextPolicy strips any markup the backend may have carried
// over from the source document before the text is surfaced to the
// conversation.
var extractedTextPolicy = bluemonday.StrictPolicy()

type ingestBody struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	ThreadId string `json:"thread_id"`
}

type ingestResponse struct {
	FileId        string `validate:"required" json:"file_id"`
	Filename      string `validate:"required" json:"filename"`
	FileType      string `validate:"required" json:"file_type"`
	PageCount     *int   `json:"page_count"`
	SheetCount    *int   `json:"sheet_count"`
	TotalRows     *int   `json:"total_rows"`
	ExtractedText string `validate:"required" json:"extracted_text"`
}

// ProcessDocument uploads a PDF for extraction.
func (c *APIClient) ProcessDocument(ctx context.Context, file domain.PendingUpload, threadId domain.ThreadId) (*domain.AttachmentRecord, error) {
	return c.process(ctx, c.Api.PdfPath, file, threadId)
}

// ProcessSpreadsheet uploads a spreadsheet for extraction.
func (c *APIClient) ProcessSpreadsheet(ctx context.Context, file domain.PendingUpload, threadId domain.ThreadId) (*domain.AttachmentRecord, error) {
	return c.process(ctx, c.Api.ExcelPath, file, threadId)
}

func (c *APIClient) process(ctx context.Context, path string, file domain.PendingUpload, threadId domain.ThreadId) (*domain.AttachmentRecord, error) {
	body := ingestBody{
		Filename: file.Filename,
		Content:  base64.StdEncoding.EncodeToString(file.Data),
		ThreadId: threadId,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ingest request: %w", err)
	}

	resp, err := c.do(ctx, "POST", path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to ingest %s (status %d): %s", file.Filename, resp.StatusCode, string(bodyBytes))
	}

	var parsed ingestResponse
	if err := utils.DecodeValidate(resp.Body, &parsed); err != nil {
		return nil, fmt.Errorf("cannot decode ingest response for %s: %w", file.Filename, err)
	}

	return mapRecord(parsed), nil
}

// mapRecord converts a backend payload into an AttachmentRecord.
// Kind comes from the payload's declared type, not the original MIME sniff.
func mapRecord(r ingestResponse) *domain.AttachmentRecord {
	return &domain.AttachmentRecord{
		Id:            r.FileId,
		Name:          r.Filename,
		Kind:          domain.FileKind(r.FileType),
		PageCount:     r.PageCount,
		SheetCount:    r.SheetCount,
		RowCount:      r.TotalRows,
		ExtractedText: extractedTextPolicy.Sanitize(r.ExtractedText),
	}
}
