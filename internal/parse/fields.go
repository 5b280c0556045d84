package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Record maps field names to typed values: string, int, float64 or
// time.Time. A field that could not be extracted is simply absent; the
// required-field check happens at assembly time, never inside an extractor.
type Record map[string]any

// dateLayout is the MM/DD/YYYY form dates take in both document families.
const dateLayout = "01/02/2006"

var (
	poNumberPattern     = regexp.MustCompile(`Purchase Order\s+([A-Z0-9]+)`)
	itemBlockPattern    = regexp.MustCompile(`\d+\s+\w+\s+([A-Z0-9\-]+)\s+(.+?)\s+(\d+)\s+EACH\s+(\d+\.\d+)`)
	datePattern         = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)
	deliveryDatePattern = regexp.MustCompile(`Delivery Requested Date\s+(\d{2}/\d{2}/\d{4})`)
	salesOrderPattern   = regexp.MustCompile(`KOHLER SALES ORDER\s+([A-Z0-9\-]+)`)
	customerPOPattern   = regexp.MustCompile(`CUSTOMER PO\s+([A-Z0-9\-]+)`)
)

// extractPONumber captures the order identifier from the fixed PO line.
func extractPONumber(lines []string, pos int) (string, bool) {
	if pos < 0 || len(lines) < pos+1 {
		return "", false
	}
	m := poNumberPattern.FindStringSubmatch(lines[pos])
	if m == nil {
		return "", false
	}
	return m[1], true
}

// applyItemBlock decodes the line-item block starting at pos: SKU/material,
// description, quantity and unit price, anchored on the literal token EACH.
// The description continues onto the following physical line, joined with a
// single space. A malformed numeric token drops only that field.
func applyItemBlock(rec Record, lines []string, pos int, skuField string) {
	if pos < 0 || len(lines) < pos+2 {
		return
	}
	m := itemBlockPattern.FindStringSubmatch(lines[pos])
	if m == nil {
		return
	}

	rec[skuField] = m[1]
	rec[colDescription] = strings.TrimSpace(strings.TrimSpace(m[2]) + " " + lines[pos+1])
	if qty, err := strconv.Atoi(m[3]); err == nil {
		rec[colQty] = qty
	}
	if price, err := strconv.ParseFloat(m[4], 64); err == nil {
		rec[colUnitPrice] = price
	}
}

// extractLineDate returns the first date-shaped substring on the given line.
func extractLineDate(lines []string, pos int) (time.Time, bool) {
	if pos < 0 || len(lines) < pos+1 {
		return time.Time{}, false
	}
	return parseDateMatch(datePattern.FindStringSubmatch(lines[pos]))
}

// extractDeliveryDate searches the whole text for the "Delivery Requested
// Date" phrase immediately followed by a date. The phrase can appear anywhere
// in the document, so this is independent of line offsets.
func extractDeliveryDate(text string) (time.Time, bool) {
	return parseDateMatch(deliveryDatePattern.FindStringSubmatch(text))
}

// extractLineDeliveryDate matches the delivery-date phrase and its date on
// one specific anchor line, for layouts where the phrase repeats per item.
func extractLineDeliveryDate(lines []string, pos int) (time.Time, bool) {
	if pos < 0 || len(lines) < pos+1 {
		return time.Time{}, false
	}
	return parseDateMatch(deliveryDatePattern.FindStringSubmatch(lines[pos]))
}

// applyLinePattern captures a single-group pattern from one line into the
// named field, leaving the field absent when the pattern does not match.
func applyLinePattern(rec Record, field string, pattern *regexp.Regexp, lines []string, pos int) {
	if pos < 0 || len(lines) < pos+1 {
		return
	}
	if m := pattern.FindStringSubmatch(lines[pos]); m != nil {
		rec[field] = m[1]
	}
}

func parseDateMatch(m []string) (time.Time, bool) {
	if m == nil {
		return time.Time{}, false
	}
	d, err := time.Parse(dateLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
