package validation

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/quillchat-dev/quillchat/shared/domain"
)

// Partition splits a selection into files accepted by the MIME
// allow-list and the rest, preserving original selection order.
// An empty accepted set is reported through ErrNoSupportedFiles so the
// caller can block the batch before any network activity.
func Partition(selection []domain.PendingUpload, allowedDocumentMimes, allowedSpreadsheetMimes []string) (accepted []domain.PendingUpload, skipped int, err error) {
	if len(selection) == 0 {
		return nil, 0, ErrNoSupportedFiles
	}

	allowedMimes := BuildAllowedMimeMap(allowedDocumentMimes, allowedSpreadsheetMimes)

	for _, file := range selection {
		mimeType, detectErr := DetectMimeType(file)
		if detectErr != nil || !allowedMimes[mimeType] {
			skipped++
			continue
		}
		// Carry the detected type forward so endpoint routing never
		// re-sniffs.
		file.MimeType = mimeType
		accepted = append(accepted, file)
	}

	if len(accepted) == 0 {
		return nil, skipped, ErrNoSupportedFiles
	}
	return accepted, skipped, nil
}

func BuildAllowedMimeMap(documentMimes, spreadsheetMimes []string) map[string]bool {
	allowedMimes := make(map[string]bool)
	for _, m := range documentMimes {
		allowedMimes[m] = true
	}
	for _, m := range spreadsheetMimes {
		allowedMimes[m] = true
	}
	return allowedMimes
}

// The stdlib table lacks the spreadsheet extensions on a bare system.
var extensionMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
}

// DetectMimeType resolves a file's MIME type, falling back to the
// extension when the picker supplied nothing useful.
func DetectMimeType(file domain.PendingUpload) (string, error) {
	mimeType := file.MimeType

	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if detectedType, ok := extensionMimeTypes[ext]; ok {
			mimeType = detectedType
		} else if detectedType := mime.TypeByExtension(ext); detectedType != "" {
			mimeType = detectedType
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("%w: could not detect MIME type for file %s", ErrInvalidMimeType, file.Filename)
	}

	return mimeType, nil
}

// IsSpreadsheet reports whether the detected MIME type routes to the
// spreadsheet endpoint rather than the document one.
func IsSpreadsheet(mimeType string, allowedSpreadsheetMimes []string) bool {
	for _, m := range allowedSpreadsheetMimes {
		if m == mimeType {
			return true
		}
	}
	return false
}

// CheckSize enforces the configured per-file size limit.
func CheckSize(file domain.PendingUpload, maxSizeBytes int64) error {
	if maxSizeBytes > 0 && int64(len(file.Data)) > maxSizeBytes {
		return fmt.Errorf("%w: %s (%.1f MB)", ErrFileTooLarge, file.Filename, FormatSizeMB(int64(len(file.Data))))
	}
	return nil
}

// FormatSizeMB converts bytes to megabytes for user-friendly error messages.
func FormatSizeMB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}
