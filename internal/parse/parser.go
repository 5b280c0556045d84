package parse

import (
	"fmt"
	"time"

	"github.com/jeffery5bai/pdf2excel/internal/pdfx"
)

// shipToAnchorKeyword locates the bill-to label line used to derive the
// second-column ship-to block in the retail layout.
const shipToAnchorKeyword = "PNA"

// Parse extracts all records from one document. Wholesale documents yield
// exactly one record; retail documents yield one record per line-item group,
// each repeating the document-level fields. Individual extraction misses
// leave fields absent; only a structural anchor mismatch makes the whole
// document fail.
func (t *Template) Parse(text string, words []pdfx.WordToken, variant Variant) ([]Record, error) {
	lines := BuildLines(text)

	switch t.Family {
	case FamilyWholesale:
		return t.parseWholesale(text, lines, variant)
	case FamilyRetail:
		return t.parseRetail(text, lines, words, variant)
	default:
		return nil, fmt.Errorf("unknown document family: %s", t.Family)
	}
}

func (t *Template) parseWholesale(text string, lines []string, variant Variant) ([]Record, error) {
	rec := Record{}

	if po, ok := extractPONumber(lines, t.POLine); ok {
		rec[colPONumber] = po
	}

	anchors := LocateAnchors(lines, t.Anchors)
	if itemAnchor, ok := anchors.First(AnchorItem); ok {
		applyItemBlock(rec, lines, itemAnchor+t.ItemAnchorOffset[variant], colMaterial)
	}

	if created, ok := extractLineDate(lines, t.CreateDateLine[variant]); ok {
		rec[colCreateDate] = created
	}
	if due, ok := extractDeliveryDate(text); ok {
		rec[colDueDate] = due
	}

	// Offset selection happens once per document, before any derived field.
	days := t.ConfirmDays.Days(text)
	if created, ok := rec[colCreateDate].(time.Time); ok {
		rec[colGTCRD] = created.AddDate(0, 0, days)
	}

	return []Record{rec}, nil
}

func (t *Template) parseRetail(text string, lines []string, words []pdfx.WordToken, variant Variant) ([]Record, error) {
	anchors := LocateAnchors(lines, t.Anchors)
	if err := anchors.RequireEqualCounts(
		AnchorItem, AnchorSalesOrder, AnchorCustomerPO, AnchorDeliveryDate,
	); err != nil {
		return nil, err
	}

	// Document-level fields shared by every line item.
	shared := Record{}
	if po, ok := extractPONumber(lines, t.POLine); ok {
		shared[colKohlerPO] = po
	}
	if ordered, ok := extractLineDate(lines, t.CreateDateLine[variant]); ok {
		shared[colOrderDate] = ordered
	}
	if shipTo, ok := ResolveShipTo(words, shipToAnchorKeyword); ok {
		shared[colShipTo] = shipTo
	}

	days := t.ConfirmDays.Days(text)

	records := make([]Record, 0, len(anchors[AnchorItem]))
	for idx, itemAnchor := range anchors[AnchorItem] {
		rec := Record{
			// The customer SKU is not present on the document; the column is
			// kept in the schema and filled in downstream by the planners.
			colTHDSKU: "",
		}
		for name, value := range shared {
			rec[name] = value
		}

		applyItemBlock(rec, lines, itemAnchor+t.ItemAnchorOffset[variant], colKohlerSKU)
		applyLinePattern(rec, colSalesOrder, salesOrderPattern, lines, anchors[AnchorSalesOrder][idx])
		applyLinePattern(rec, colTHDPO, customerPOPattern, lines, anchors[AnchorCustomerPO][idx])

		if shipDate, ok := extractLineDeliveryDate(lines, anchors[AnchorDeliveryDate][idx]); ok {
			rec[colShipDate] = shipDate
		}
		if ordered, ok := rec[colOrderDate].(time.Time); ok {
			rec[colGTConfirmShip] = ordered.AddDate(0, 0, days)
		}

		records = append(records, rec)
	}

	return records, nil
}
