package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/hirematch/internal/models"
)

// ExtractedDocument is the normalized output of text extraction. Candidate
// name and contact info are best-effort heuristics; consumers must treat
// them as advisory.
type ExtractedDocument struct {
	Text          string
	CandidateName *string
	ContactInfo   *models.ContactInfo
}

type TextExtractor interface {
	Extract(data []byte, filename string) (*ExtractedDocument, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

// Extract implements TextExtractor.
func (e *textExtractor) Extract(data []byte, filename string) (*ExtractedDocument, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt":
		// Plain text carries no layout cues worth running heuristics on.
		return &ExtractedDocument{Text: string(data)}, nil
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return nil, err
		}
		return withHeuristics(text), nil
	case ".docx":
		text, err := extractDOCX(data)
		if err != nil {
			return nil, err
		}
		return withHeuristics(text), nil
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, ext)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content found in PDF", models.ErrNoTextContent)
	}

	return text, nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()

	// Paragraph closes become newlines, then the remaining markup is dropped.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	text := xmlTag.ReplaceAllString(content, "")

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content found in DOCX", models.ErrNoTextContent)
	}

	return text, nil
}

func withHeuristics(text string) *ExtractedDocument {
	return &ExtractedDocument{
		Text:          text,
		CandidateName: extractCandidateName(text),
		ContactInfo:   extractContactInfo(text),
	}
}

// extractCandidateName scans the first 10 non-empty lines and returns the
// first one between 3 and 99 characters containing no digit. Nil when no
// line qualifies.
func extractCandidateName(text string) *string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		seen++
		if seen > 10 {
			break
		}

		if len(line) > 2 && len(line) < 100 && !strings.ContainsFunc(line, unicode.IsDigit) {
			return &line
		}
	}
	return nil
}

// extractContactInfo pulls the first email address and the first
// phone-shaped token out of the text. Returns nil when neither is found.
func extractContactInfo(text string) *models.ContactInfo {
	contact := &models.ContactInfo{}

	if email := emailPattern.FindString(text); email != "" {
		contact.Email = email
	}

	if phone := phonePattern.FindString(text); phone != "" {
		contact.Phone = normalizePhone(phone)
	}

	if contact.Email == "" && contact.Phone == "" {
		return nil
	}
	return contact
}

// normalizePhone renders any matched phone token as +1-XXX-XXX-XXXX.
func normalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	number := digits.String()
	if len(number) == 11 && number[0] == '1' {
		number = number[1:]
	}
	if len(number) != 10 {
		return raw
	}

	return fmt.Sprintf("+1-%s-%s-%s", number[0:3], number[3:6], number[6:10])
}
