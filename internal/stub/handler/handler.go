// Package handler exposes the stub extraction backend's HTTP surface.
// Paths and bodies are a compatibility contract with the composer.
package handler

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quillchat-dev/quillchat/internal/stub/service"
	"github.com/quillchat-dev/quillchat/shared/domain"
	internal_errors "github.com/quillchat-dev/quillchat/shared/errors"
	"github.com/quillchat-dev/quillchat/shared/utils"
)

type Handler struct {
	files       *service.FileStore
	maxFileSize int64
}

func New(files *service.FileStore, maxFileSize int64) *Handler {
	return &Handler{files, maxFileSize}
}

type ingestRequest struct {
	Filename string `validate:"required" json:"filename"`
	Content  string `validate:"required" json:"content"`
	ThreadId string `validate:"required" json:"thread_id"`
}

func (h *Handler) ProcessPdf(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, domain.FileKindDocument)
}

func (h *Handler) ProcessExcel(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, domain.FileKindSpreadsheet)
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request, kind domain.FileKind) {
	var body ingestRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	content, err := base64.StdEncoding.DecodeString(body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{Message: "content is not valid base64", StatusCode: http.StatusBadRequest})
		return
	}
	if h.maxFileSize > 0 && int64(len(content)) > h.maxFileSize {
		utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{Message: "file too large", StatusCode: http.StatusRequestEntityTooLarge})
		return
	}

	record, err := h.files.Ingest(body.ThreadId, body.Filename, content, kind)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	slog.Info("ingested file", "thread", body.ThreadId, "file", record.Id, "kind", kind)
	writeJSON(w, record)
}

func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")
	fileId := chi.URLParam(r, "fileId")

	record, err := h.files.Get(threadId, fileId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, record)
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")
	writeJSON(w, h.files.List(threadId))
}

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")
	fileId := chi.URLParam(r, "fileId")

	if err := h.files.Delete(threadId, fileId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	slog.Info("deleted file", "thread", threadId, "file", fileId)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
