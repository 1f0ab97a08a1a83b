// Package service holds the in-memory file store behind the stub
// extraction backend. Extraction results are canned: the stub never
// parses real documents, it only honors the wire contract so the
// composer can be developed and tested without the real collaborator.
package service

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quillchat-dev/quillchat/shared/domain"
	internal_errors "github.com/quillchat-dev/quillchat/shared/errors"
)

type storedFile struct {
	record     domain.AttachmentRecord
	uploadedAt time.Time
}

// FileStore keeps ingested files per thread, in upload order.
// Threads expire wholesale once idle longer than ttl, mirroring the
// session expiry of the real backend.
type FileStore struct {
	mu      sync.Mutex
	threads map[domain.ThreadId][]storedFile
	touched map[domain.ThreadId]time.Time
	ttl     time.Duration
}

func NewFileStore(ttl time.Duration) *FileStore {
	return &FileStore{
		threads: make(map[domain.ThreadId][]storedFile),
		touched: make(map[domain.ThreadId]time.Time),
		ttl:     ttl,
	}
}

// Ingest stores one file and fabricates deterministic extraction
// metadata from the payload size.
func (s *FileStore) Ingest(threadId domain.ThreadId, filename domain.Filename, content []byte, kind domain.FileKind) (*domain.AttachmentRecord, error) {
	if threadId == "" {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "thread_id is required", StatusCode: http.StatusBadRequest}
	}

	record := domain.AttachmentRecord{
		Id:   uuid.NewString(),
		Name: filename,
		Kind: kind,
	}

	switch kind {
	case domain.FileKindDocument:
		pages := len(content)/2048 + 1
		record.PageCount = &pages
		record.ExtractedText = fmt.Sprintf("Extracted text of %s (%d pages, %d bytes).", filename, pages, len(content))
	case domain.FileKindSpreadsheet:
		sheets := len(content)/4096 + 1
		rows := len(content)/64 + 1
		record.SheetCount = &sheets
		record.RowCount = &rows
		record.ExtractedText = fmt.Sprintf("Extracted rows of %s (%d sheets, %d rows).", filename, sheets, rows)
	default:
		return nil, &internal_errors.ErrorWithStatusCode{Message: "unknown file type", StatusCode: http.StatusBadRequest}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[threadId] = append(s.threads[threadId], storedFile{record: record, uploadedAt: time.Now()})
	s.touched[threadId] = time.Now()

	return &record, nil
}

// List returns a thread's files in upload order. Always non-nil so the
// handler serializes an empty array rather than null.
func (s *FileStore) List(threadId domain.ThreadId) domain.Attachments {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := s.threads[threadId]
	list := make(domain.Attachments, 0, len(files))
	for _, f := range files {
		list = append(list, f.record)
	}
	return list
}

func (s *FileStore) Get(threadId domain.ThreadId, fileId domain.FileId) (*domain.AttachmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.threads[threadId] {
		if f.record.Id == fileId {
			record := f.record
			return &record, nil
		}
	}
	return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("file %s not found in thread %s", fileId, threadId), StatusCode: http.StatusNotFound}
}

func (s *FileStore) Delete(threadId domain.ThreadId, fileId domain.FileId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := s.threads[threadId]
	for i, f := range files {
		if f.record.Id == fileId {
			s.threads[threadId] = append(files[:i], files[i+1:]...)
			s.touched[threadId] = time.Now()
			return nil
		}
	}
	return &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("file %s not found in thread %s", fileId, threadId), StatusCode: http.StatusNotFound}
}

// Sweep drops threads idle longer than the ttl and reports how many
// were expired. A ttl of zero disables expiry.
func (s *FileStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	cutoff := time.Now().Add(-s.ttl)
	for threadId, touched := range s.touched {
		if touched.Before(cutoff) {
			delete(s.threads, threadId)
			delete(s.touched, threadId)
			expired++
		}
	}
	return expired
}
