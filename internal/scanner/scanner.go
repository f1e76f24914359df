package scanner

import (
	"context"
	"errors"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

// Sentinel errors for the scanner failure taxonomy. Implementations wrap
// these so callers can classify failures with errors.Is.
var (
	// ErrFileNotFound means the scan target does not exist.
	ErrFileNotFound = errors.New("pdf file not found")
	// ErrInvalidPDF means the file is not a well-formed PDF.
	ErrInvalidPDF = errors.New("invalid or corrupt pdf")
	// ErrEncrypted means the PDF is password-protected and cannot be scanned.
	ErrEncrypted = errors.New("pdf is password-protected")
)

// Scanner extracts sensitive-data findings from a PDF file.
//
// Findings are emitted with a placeholder DocumentID; the scanner does not
// know the real document identity, and the caller must overwrite it before
// persisting. A page that cannot be read is skipped, never aborting the scan.
type Scanner interface {
	Scan(ctx context.Context, filePath string) ([]models.Finding, error)

	// Name identifies the implementation, e.g. for metric labels.
	Name() string

	// SupportedPatterns lists the sensitive-data types this scanner detects.
	SupportedPatterns() []string
}
