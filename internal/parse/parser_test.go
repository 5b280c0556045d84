package parse

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDoc joins the given lines into page text, padding the header region
// with boilerplate so the fixed-offset fields land on their documented lines.
func buildDoc(lines []string) string {
	return strings.Join(lines, "\n")
}

func wholesaleFiller() []string {
	return []string{
		"Vendor: Kohler Co.",
		"444 Highland Drive",
		"Kohler WI 53044",
		"Bill To: Distribution Partners Inc",
		"1200 Commerce Way",
		"Chicago IL 60601",
		"Ship To: Regional Warehouse 14",
		"900 Industrial Pkwy",
		"Columbus OH 43004",
		"Buyer: R. Alvarez",
		"Phone: 800-555-0188",
		"Currency: USD",
		"Payment Terms",
		"Freight Terms",
		"Date Terms Ship Via",
	}
}

func wholesaleOriginalDoc() string {
	lines := []string{
		"KOHLER CO.",
		"PURCHASE ORDER DOCUMENT",
		"Purchase Order KP00123456",
	}
	lines = append(lines, wholesaleFiller()...)
	lines = append(lines,
		"01/15/2024 Net 30 Truck",
		"No./Description Qty UOM Unit Price",
		"10 EA K-45678-BN Bathroom faucet 25 EACH 149.99",
		"single-control widespread",
		"Delivery Requested Date 03/01/2024",
		"Thank you for your business",
	)
	return buildDoc(lines)
}

func wholesaleRevisedDoc() string {
	lines := []string{
		"KOHLER CO.",
		"PURCHASE ORDER DOCUMENT",
		"Purchase Order KP00123456",
		RevisionBanner,
	}
	lines = append(lines, wholesaleFiller()...)
	lines = append(lines,
		"01/20/2024 Net 30 Truck",
		"No./Description Qty UOM Unit Price",
		"Changed line items are marked below",
		"10 EA K-45678-BN Bathroom faucet 30 EACH 149.99",
		"single-control widespread",
		"Delivery Requested Date 03/08/2024",
	)
	return buildDoc(lines)
}

func TestParseWholesaleOriginal(t *testing.T) {
	text := wholesaleOriginalDoc()
	require.Equal(t, VariantOriginal, DetectVariant(text))

	records, err := WholesaleTemplate().Parse(text, nil, VariantOriginal)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, "KP00123456", rec["PO#"])
	assert.Equal(t, "K-45678-BN", rec["Material"])
	assert.Equal(t, "Bathroom faucet single-control widespread", rec["Description"])
	assert.Equal(t, 25, rec["Qty"])
	assert.Equal(t, 149.99, rec["Unit Price"])
	assert.Equal(t, date(2024, 1, 15), rec["Create Date"])
	assert.Equal(t, date(2024, 3, 1), rec["Due Date"])
	assert.Equal(t, date(2024, 3, 25), rec["GT CRD"])
}

func TestParseWholesaleRevised(t *testing.T) {
	text := wholesaleRevisedDoc()
	require.Equal(t, VariantRevised, DetectVariant(text))

	records, err := WholesaleTemplate().Parse(text, nil, VariantRevised)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, "KP00123456", rec["PO#"])
	assert.Equal(t, 30, rec["Qty"])
	assert.Equal(t, date(2024, 1, 20), rec["Create Date"])
	assert.Equal(t, date(2024, 3, 8), rec["Due Date"])
	assert.Equal(t, date(2024, 3, 30), rec["GT CRD"])
}

func TestParseWholesaleMissingFields(t *testing.T) {
	// A document with nothing recognizable still parses; the record simply
	// carries no fields. Rejection is the batch layer's call.
	records, err := WholesaleTemplate().Parse("Completely unrelated text", nil, VariantOriginal)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0])
}

func TestParseWholesaleSKOffsets(t *testing.T) {
	base := wholesaleOriginalDoc()

	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"splash program uses 45 days", base + "\nProgram: SPLASH", date(2024, 2, 29)},
		{"standard program uses 60 days", base, date(2024, 3, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := SKWholesaleTemplate().Parse(tt.text, nil, VariantOriginal)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0]["GT CRD"])
		})
	}
}

func retailDoc() string {
	lines := []string{
		"THE HOME DEPOT",
		"Store Support Center",
		"Purchase Order DI00778899",
		"2455 Paces Ferry Road",
		"Atlanta GA 30339",
		"Vendor: Kohler Co.",
		"444 Highland Drive",
		"Kohler WI 53044",
		"Ship To Block",
		"PNA 6707",
		"Freight Terms: Prepaid",
		"Buyer: L. Chen",
		"Phone: 770-555-0114",
		"Currency: USD",
		"Payment Terms: Net 45",
		"FOB: Origin",
		"Carrier: LTL",
		"Order Header",
		"02/10/2024 FOB Origin",
		"No./Description Qty UOM Unit Price",
		"10 EA K-304-K-NA Shower valve 12 EACH 89.50",
		"rough-in universal",
		"Kohler Sales Order Number KOHLER SALES ORDER 3051177-1",
		"Customer Purchase Order Number CUSTOMER PO DI00778899-1",
		"Delivery Requested Date 04/15/2024",
		"No./Description Qty UOM Unit Price",
		"20 EA K-22070-VS Kitchen faucet 6 EACH 199.00",
		"pull-down spray",
		"Kohler Sales Order Number KOHLER SALES ORDER 3051177-2",
		"Customer Purchase Order Number CUSTOMER PO DI00778899-2",
		"Delivery Requested Date 04/22/2024",
	}
	return buildDoc(lines)
}

func TestParseRetail(t *testing.T) {
	records, err := RetailTemplate().Parse(retailDoc(), nil, VariantOriginal)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "DI00778899", first["Kohler PO"])
	assert.Equal(t, "K-304-K-NA", first["Kohler SKU"])
	assert.Equal(t, "Shower valve rough-in universal", first["Description"])
	assert.Equal(t, 12, first["Qty"])
	assert.Equal(t, 89.50, first["Unit Price"])
	assert.Equal(t, "3051177-1", first["Kohler Sales Order#"])
	assert.Equal(t, "DI00778899-1", first["THD PO#"])
	assert.Equal(t, date(2024, 4, 15), first["Ship Date"])
	assert.Equal(t, date(2024, 2, 10), first["Order Date"])
	assert.Equal(t, date(2024, 4, 20), first["GT Confirmed Ship Date"])
	assert.Equal(t, "", first["THD SKU"])

	second := records[1]
	assert.Equal(t, "DI00778899", second["Kohler PO"])
	assert.Equal(t, "K-22070-VS", second["Kohler SKU"])
	assert.Equal(t, "3051177-2", second["Kohler Sales Order#"])
	assert.Equal(t, "DI00778899-2", second["THD PO#"])
	assert.Equal(t, date(2024, 4, 22), second["Ship Date"])

	// Ship-to is a word-coordinate field; with no words it stays absent.
	_, present := first["Ship To"]
	assert.False(t, present)
}

func TestParseRetailAnchorMismatch(t *testing.T) {
	// Drop the second delivery line so the four anchor groups disagree.
	text := strings.Replace(retailDoc(), "\nDelivery Requested Date 04/22/2024", "", 1)

	_, err := RetailTemplate().Parse(text, nil, VariantOriginal)
	require.Error(t, err)

	var structural *StructuralError
	require.True(t, errors.As(err, &structural))
	assert.Equal(t, 2, structural.Counts[AnchorItem])
	assert.Equal(t, 1, structural.Counts[AnchorDeliveryDate])
}

func TestTemplateFor(t *testing.T) {
	for _, name := range []string{"wholesale", "wholesale-sk", "retail"} {
		tmpl, err := TemplateFor(name)
		require.NoError(t, err)
		assert.Equal(t, name, tmpl.Name)
	}

	_, err := TemplateFor("unknown")
	assert.Error(t, err)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
