// Package validation checks uploads before they reach the processing
// pipeline. A request that fails here never touches storage.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Error codes surfaced to clients alongside the message.
const (
	CodeMissingFilename    = "MISSING_FILENAME"
	CodeInvalidFileType    = "INVALID_FILE_TYPE"
	CodeInvalidContentType = "INVALID_CONTENT_TYPE"
	CodeEmptyFile          = "EMPTY_FILE"
	CodeFileTooLarge       = "FILE_TOO_LARGE"
)

const allowedContentType = "application/pdf"

// Error is a rejected-upload error with a stable machine-readable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// ValidatePDFUpload runs all upload checks in order and returns the first
// failure. The content type is advisory: an empty one passes, a wrong one
// does not.
func ValidatePDFUpload(filename, contentType string, fileSize, maxSize int64) error {
	if filename == "" {
		return &Error{Code: CodeMissingFilename, Message: "Filename is required"}
	}
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return &Error{Code: CodeInvalidFileType, Message: "Invalid file type. Only PDF files are allowed."}
	}
	if contentType != "" && contentType != allowedContentType {
		return &Error{
			Code:    CodeInvalidContentType,
			Message: "Invalid content type: " + contentType + ". Expected: " + allowedContentType,
		}
	}
	if fileSize == 0 {
		return &Error{Code: CodeEmptyFile, Message: "File is empty"}
	}
	if fileSize > maxSize {
		return &Error{
			Code:    CodeFileTooLarge,
			Message: fmt.Sprintf("File size (%d bytes) exceeds maximum allowed size of %d bytes.", fileSize, maxSize),
		}
	}
	return nil
}
