package pdfx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Default page height (US Letter) used when a page carries no usable MediaBox.
const defaultPageHeight = 792.0

// Extractor extracts text content and word tokens from PDF files.
type Extractor struct {
	maxFileSize int64
}

// NewExtractor creates a new extractor with the specified file size limit.
func NewExtractor(maxFileSize int64) *Extractor {
	return &Extractor{
		maxFileSize: maxFileSize,
	}
}

// ExtractFile extracts the full text of a PDF, pages joined with newlines.
// When withWords is true the word tokens of the first page are included in
// the result for layout-sensitive field resolution.
func (e *Extractor) ExtractFile(path string, withWords bool) (*DocumentContent, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if err := e.validatePDFFile(path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	result := &DocumentContent{
		Path:  path,
		Name:  filepath.Base(path),
		Pages: pdfReader.NumPage(),
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		words := assembleWords(page.Content().Text, pageHeight(page))
		if pageNum == 1 && withWords {
			result.Words = words
		}

		text := pageTextFromWords(words)
		if text == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(text)
	}

	result.Text = builder.String()
	if result.Text == "" {
		return nil, fmt.Errorf("no text content could be extracted from PDF: %s", result.Name)
	}

	return result, nil
}

// validatePDFFile performs basic validation on a PDF file.
func (e *Extractor) validatePDFFile(path string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() > e.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), e.maxFileSize)
	}
	return nil
}

// pageHeight reads the page height from the MediaBox, falling back to US
// Letter when the entry is missing or malformed.
func pageHeight(page pdf.Page) (height float64) {
	defer func() {
		if r := recover(); r != nil {
			height = defaultPageHeight
		}
	}()

	mediaBox := page.V.Key("MediaBox")
	if mediaBox.IsNull() || mediaBox.Kind() != pdf.Array || mediaBox.Len() != 4 {
		return defaultPageHeight
	}

	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		val := mediaBox.Index(i)
		switch val.Kind() {
		case pdf.Integer:
			coords[i] = float64(val.Int64())
		case pdf.Real:
			coords[i] = val.Float64()
		default:
			return defaultPageHeight
		}
	}

	h := coords[3] - coords[1]
	if h <= 0 {
		return defaultPageHeight
	}
	return h
}
