package batch

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jeffery5bai/pdf2excel/internal/parse"
)

// Report renders the run outcome for the interactive caller: accepted and
// rejected counts, every rejected file with its reason, and a preview of the
// first rows of the final table. dateLayout is the Go time layout used for
// date cells.
func (r *Result) Report(schema []parse.Column, dateLayout string, previewRows int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "original files: %d, revised files: %d, rejected files: %d, output rows: %d\n",
		len(r.OriginalFiles), len(r.RevisedFiles), len(r.Rejections), len(r.Records))

	if len(r.Rejections) > 0 {
		b.WriteString("\nrejected:\n")
		for _, rej := range r.Rejections {
			fmt.Fprintf(&b, "  %s: %s\n", rej.Name, rej.Reason)
		}
	}

	if previewRows > 0 && len(r.Records) > 0 {
		n := previewRows
		if n > len(r.Records) {
			n = len(r.Records)
		}
		fmt.Fprintf(&b, "\npreview (first %d of %d):\n", n, len(r.Records))

		headers := make([]string, len(schema))
		for i, col := range schema {
			headers[i] = col.Name
		}
		b.WriteString("  " + strings.Join(headers, "\t") + "\n")

		for _, rec := range r.Records[:n] {
			cells := make([]string, len(schema))
			for i, col := range schema {
				cells[i] = formatValue(rec[col.Name], dateLayout)
			}
			b.WriteString("  " + strings.Join(cells, "\t") + "\n")
		}
	}

	return b.String()
}

func formatValue(value any, dateLayout string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(dateLayout)
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
