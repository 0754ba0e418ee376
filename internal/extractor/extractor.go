// Package extractor turns résumé documents into candidate inputs.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/khrees2412/screener/internal/matcher"
	"github.com/khrees2412/screener/pkg/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is a supported document type
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// UnsupportedFormatError is returned for files that are neither PDF nor DOCX
type UnsupportedFormatError struct {
	Name string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s: only pdf and docx are allowed", e.Ext, e.Name)
}

// ExtractionError is returned when a document cannot be read
type ExtractionError struct {
	Name   string
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s text from %s: %v", e.Format, e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DetectFormat picks the document format from a file name's extension
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	}
	return "", &UnsupportedFormatError{Name: name, Ext: ext}
}

// ExtractText returns the document's text with pages or paragraphs joined
// by a single space
func ExtractText(name string, data []byte, format Format) (string, error) {
	var (
		parts []string
		err   error
	)

	switch format {
	case FormatPDF:
		parts, err = pdfPages(data)
	case FormatDOCX:
		parts, err = docxParagraphs(data)
	default:
		return "", &UnsupportedFormatError{Name: name, Ext: string(format)}
	}
	if err != nil {
		return "", &ExtractionError{Name: name, Format: format, Err: err}
	}

	return strings.Join(parts, " "), nil
}

// ParseFields scans text for skills, years of experience and a
// qualification. Missing data degrades to empty, zero or unknown.
func ParseFields(text string) models.CandidateInput {
	tokens := matcher.Tokenize(text)
	return models.CandidateInput{
		Skills:          matcher.Skills(tokens),
		ExperienceYears: matcher.ExperienceYears(text, tokens),
		Qualification:   matcher.Qualification(tokens),
	}
}

// Extract detects the format of a named document, reads its text and
// parses candidate fields from it
func Extract(name string, data []byte) (models.CandidateInput, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return models.CandidateInput{}, err
	}

	text, err := ExtractText(name, data, format)
	if err != nil {
		return models.CandidateInput{}, err
	}

	input := ParseFields(text)
	input.Name = NameFromFile(name)
	return input, nil
}

// NameFromFile derives a display name from a file name,
// e.g. "jane_doe-cv.pdf" becomes "Jane Doe Cv"
func NameFromFile(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	return cases.Title(language.English).String(strings.Join(strings.Fields(base), " "))
}
