package batch

import (
	"errors"

	"github.com/jeffery5bai/pdf2excel/internal/parse"
)

// ErrNoDocumentsParsed is returned when a run accepts zero records overall.
// No export artifact may be produced in that case.
var ErrNoDocumentsParsed = errors.New("no documents parsed")

// Rejection names one document that was excluded from the run and why.
type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Result is the outcome of one batch run: the aggregated record set plus the
// per-document bookkeeping the caller reports back to the user. It is
// produced once per run and not mutated afterwards.
type Result struct {
	Records       []parse.Record
	OriginalFiles []string
	RevisedFiles  []string
	Rejections    []Rejection
}
