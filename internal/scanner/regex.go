package scanner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

// pattern pairs a finding type with its regex. Kept as an ordered slice so
// findings come out in a deterministic order within a page.
type pattern struct {
	findingType models.FindingType
	re          *regexp.Regexp
}

var patterns = []pattern{
	{models.FindingSSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{models.FindingEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
}

// RegexScanner detects sensitive data in PDF text using regex patterns.
// Pages are parsed with pdfcpu; a page whose content cannot be read is
// skipped rather than failing the whole scan.
type RegexScanner struct{}

func NewRegexScanner() *RegexScanner {
	return &RegexScanner{}
}

func (s *RegexScanner) Name() string { return "RegexScanner" }

func (s *RegexScanner) SupportedPatterns() []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, string(p.findingType))
	}
	return out
}

// Scan extracts text page by page and matches every pattern against it.
// Each match becomes a finding with confidence 1.0 and location "page N".
// The DocumentID on returned findings is a placeholder the caller must
// overwrite before persisting.
func (s *RegexScanner) Scan(ctx context.Context, filePath string) ([]models.Finding, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		if isEncryptionError(err) {
			return nil, fmt.Errorf("%w: %s", ErrEncrypted, filePath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	placeholder := uuid.NewString()
	var findings []models.Finding
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := extractPageText(pdfCtx, pageNr)
		if text == "" {
			continue
		}
		location := fmt.Sprintf("page %d", pageNr)
		for _, p := range patterns {
			for range p.re.FindAllStringIndex(text, -1) {
				// Only match metadata is recorded, never the matched text.
				findings = append(findings, *models.NewFinding(placeholder, p.findingType, location, 1.0))
			}
		}
	}
	return findings, nil
}

func isEncryptionError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "encrypt") || strings.Contains(msg, "password")
}

// extractPageText pulls text out of a single page's content stream.
// Any per-page error yields an empty string, skipping the page.
func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return extractTextFromStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// extractTextFromStream parses PDF content stream operators for text.
func extractTextFromStream(data []byte) string {
	var sb strings.Builder

	lines := bytes.Split(data, []byte{'\n'})
	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// Tj operator: (text) Tj  /  TJ operator: [(text) -100 (more)] TJ
		if bytes.HasSuffix(line, []byte("Tj")) || bytes.HasSuffix(line, []byte("TJ")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		}

		// ' operator (move to next line and show text): (text) '
		if bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodePDFString(m[1]))
			}
		}

		// Td/TD reposition the text cursor; T* moves to the next line.
		if bytes.HasSuffix(line, []byte("Td")) || bytes.HasSuffix(line, []byte("TD")) {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}
		if bytes.Equal(line, []byte("T*")) {
			sb.WriteByte('\n')
		}
	}

	return cleanPDFText(sb.String())
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '(', ')':
				sb.WriteByte(raw[i])
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
						i++
						val = val*8 + int(raw[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// cleanPDFText normalises whitespace in extracted PDF text.
func cleanPDFText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
