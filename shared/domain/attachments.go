package domain

// FileKind is the backend-declared type of an ingested file.
// It comes from the upload response, not from the client-side MIME sniff.
type FileKind string

const (
	FileKindDocument    FileKind = "pdf"
	FileKindSpreadsheet FileKind = "excel"
)

// AttachmentRecord represents one successfully ingested document.
// PageCount is set only for documents; SheetCount and RowCount only for
// spreadsheets.
type AttachmentRecord struct {
	Id            FileId   `json:"file_id"`
	Name          Filename `json:"filename"`
	Kind          FileKind `json:"file_type"`
	PageCount     *int     `json:"page_count,omitempty"`
	SheetCount    *int     `json:"sheet_count,omitempty"`
	RowCount      *int     `json:"total_rows,omitempty"`
	ExtractedText string   `json:"extracted_text"`
}

// Attachments is the caller-visible view of a thread's attachment set.
// The authoritative set lives with the extraction backend and is
// re-fetched via resync after every mutation.
type Attachments = []AttachmentRecord

// PendingUpload is one file picked by the user, not yet uploaded.
type PendingUpload struct {
	Filename Filename
	MimeType string
	Data     []byte
}
