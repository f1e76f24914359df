package validation

import (
	"errors"
	"testing"
)

const maxSize = 10 * 1024 * 1024

func checkCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *validation.Error", err)
	}
	if verr.Code != wantCode {
		t.Fatalf("code = %q, want %q", verr.Code, wantCode)
	}
}

func TestValidatePDFUploadAccepts(t *testing.T) {
	if err := ValidatePDFUpload("doc.pdf", "application/pdf", 1024, maxSize); err != nil {
		t.Fatalf("valid upload rejected: %v", err)
	}
	// Content type is advisory; absence passes.
	if err := ValidatePDFUpload("doc.pdf", "", 1024, maxSize); err != nil {
		t.Fatalf("upload without content type rejected: %v", err)
	}
	// Extension check is case-insensitive.
	if err := ValidatePDFUpload("DOC.PDF", "application/pdf", 1024, maxSize); err != nil {
		t.Fatalf("uppercase extension rejected: %v", err)
	}
}

func TestValidatePDFUploadRejects(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantCode    string
	}{
		{"missing filename", "", "application/pdf", 10, CodeMissingFilename},
		{"wrong extension", "doc.txt", "application/pdf", 10, CodeInvalidFileType},
		{"no extension", "doc", "application/pdf", 10, CodeInvalidFileType},
		{"wrong content type", "doc.pdf", "text/plain", 10, CodeInvalidContentType},
		{"empty file", "doc.pdf", "application/pdf", 0, CodeEmptyFile},
		{"too large", "doc.pdf", "application/pdf", maxSize + 1, CodeFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePDFUpload(tt.filename, tt.contentType, tt.size, maxSize)
			if err == nil {
				t.Fatal("expected validation error")
			}
			checkCode(t, err, tt.wantCode)
		})
	}
}
