package batch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jeffery5bai/pdf2excel/internal/parse"
	"github.com/jeffery5bai/pdf2excel/internal/pdfx"
)

// Extractor yields the text content and word tokens of one PDF document.
type Extractor interface {
	ExtractFile(path string, withWords bool) (*pdfx.DocumentContent, error)
}

// Validator checks a PDF file before extraction is attempted.
type Validator interface {
	ValidateFile(path string) error
}

// Processor runs one synchronous batch: each document is validated,
// extracted, parsed and checked for completeness before the next one starts.
// Every per-document failure becomes a rejection entry; nothing short of the
// empty-batch condition aborts the run.
type Processor struct {
	template  *parse.Template
	extractor Extractor
	validator Validator
	logger    *slog.Logger
}

// NewProcessor creates a batch processor for one document template.
func NewProcessor(template *parse.Template, extractor Extractor, validator Validator, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		template:  template,
		extractor: extractor,
		validator: validator,
		logger:    logger,
	}
}

// Run processes every path in order and returns the aggregated result.
// When zero records are accepted overall, the result still carries the
// rejection list and the error is ErrNoDocumentsParsed.
func (p *Processor) Run(paths []string) (*Result, error) {
	result := &Result{}
	var originals, revised []parse.Record

	for _, path := range paths {
		name := filepath.Base(path)

		records, variant, err := p.processDocument(path, name)
		if err != nil {
			p.logger.Warn("batch.document.rejected", "file", name, "reason", err.Error())
			result.Rejections = append(result.Rejections, Rejection{Name: name, Reason: err.Error()})
			continue
		}

		p.logger.Info("batch.document.accepted",
			"file", name,
			"variant", string(variant),
			"records", len(records),
		)
		if variant == parse.VariantRevised {
			revised = append(revised, records...)
			result.RevisedFiles = append(result.RevisedFiles, name)
		} else {
			originals = append(originals, records...)
			result.OriginalFiles = append(result.OriginalFiles, name)
		}
	}

	if len(originals) == 0 && len(revised) == 0 {
		return result, ErrNoDocumentsParsed
	}

	result.Records = NewAggregator(p.template.IdentityKey).Aggregate(originals, revised)
	p.logger.Info("batch.run.ok",
		"accepted_original", len(result.OriginalFiles),
		"accepted_revised", len(result.RevisedFiles),
		"rejected", len(result.Rejections),
		"rows", len(result.Records),
	)
	return result, nil
}

// processDocument runs the per-document pipeline and returns the records
// that passed the required-field check.
func (p *Processor) processDocument(path, name string) ([]parse.Record, parse.Variant, error) {
	if !strings.Contains(name, p.template.FilenameToken) {
		return nil, "", fmt.Errorf("not a %s document (filename lacks %q)",
			p.template.Name, p.template.FilenameToken)
	}

	if err := p.validator.ValidateFile(path); err != nil {
		return nil, "", err
	}

	content, err := p.extractor.ExtractFile(path, p.template.NeedsWords)
	if err != nil {
		return nil, "", err
	}

	variant := parse.DetectVariant(content.Text)
	records, err := p.template.Parse(content.Text, content.Words, variant)
	if err != nil {
		return nil, variant, err
	}
	if len(records) == 0 {
		return nil, variant, fmt.Errorf("no extractable fields")
	}

	// Completeness is checked per record; a document keeping zero complete
	// records is rejected with the first record's missing fields named.
	complete := make([]parse.Record, 0, len(records))
	var firstMissing []string
	for _, rec := range records {
		missing := p.template.MissingFields(rec)
		if len(missing) == 0 {
			complete = append(complete, rec)
			continue
		}
		if firstMissing == nil {
			firstMissing = missing
		}
	}
	if len(complete) == 0 {
		return nil, variant, fmt.Errorf("missing required fields: %s", strings.Join(firstMissing, ", "))
	}

	return complete, variant, nil
}
