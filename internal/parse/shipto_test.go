package parse

import (
	"testing"

	"github.com/jeffery5bai/pdf2excel/internal/pdfx"
)

// retailHeaderPage models the first-page word layout of the retail template:
// a two-column address region headed by a line holding the bill-to keyword,
// with the unlabeled ship-to block below the second column, plus a busier
// occurrence of the keyword further down the page.
func retailHeaderPage() []pdfx.WordToken {
	return []pdfx.WordToken{
		// Column header line.
		{Text: "PNA", X0: 50, X1: 72, Top: 100, Bottom: 112},
		{Text: "6707", X0: 300, X1: 330, Top: 100, Bottom: 112},

		// Bill-to block under the first column.
		{Text: "KOHLER", X0: 50, X1: 95, Top: 115, Bottom: 127},
		{Text: "CO.", X0: 100, X1: 120, Top: 115, Bottom: 127},

		// Ship-to block under the second column, led by the "S" marker.
		{Text: "S", X0: 170, X1: 176, Top: 115, Bottom: 127},
		{Text: "THD", X0: 182, X1: 205, Top: 115, Bottom: 127},
		{Text: "DI", X0: 210, X1: 222, Top: 115, Bottom: 127},
		{Text: "DFC", X0: 227, X1: 250, Top: 115, Bottom: 127},
		{Text: "#6707", X0: 255, X1: 285, Top: 115, Bottom: 127},
		{Text: "-", X0: 288, X1: 292, Top: 115, Bottom: 127},
		{Text: "LUCKEY", X0: 295, X1: 315, Top: 115, Bottom: 127},

		// The keyword also appears on a crowded detail line; the resolver
		// must prefer the sparser header occurrence.
		{Text: "Vendor", X0: 50, X1: 90, Top: 300, Bottom: 312},
		{Text: "PNA", X0: 95, X1: 117, Top: 300, Bottom: 312},
		{Text: "Account", X0: 122, X1: 170, Top: 300, Bottom: 312},
		{Text: "Number", X0: 175, X1: 220, Top: 300, Bottom: 312},
		{Text: "12345", X0: 225, X1: 260, Top: 300, Bottom: 312},
	}
}

func TestResolveShipTo(t *testing.T) {
	got, ok := ResolveShipTo(retailHeaderPage(), "PNA")
	if !ok {
		t.Fatal("ResolveShipTo() reported not found")
	}
	want := "THD DI DFC #6707 - LUCKEY"
	if got != want {
		t.Errorf("ResolveShipTo() = %q, want %q", got, want)
	}
}

func TestResolveShipToNotFound(t *testing.T) {
	tests := []struct {
		name  string
		words []pdfx.WordToken
	}{
		{"no words", nil},
		{
			"keyword absent",
			[]pdfx.WordToken{
				{Text: "KOHLER", X0: 50, X1: 95, Top: 100},
				{Text: "CO.", X0: 100, X1: 120, Top: 100},
			},
		},
		{
			"anchor alone on its line",
			[]pdfx.WordToken{
				{Text: "PNA", X0: 50, X1: 72, Top: 100},
				{Text: "KOHLER", X0: 50, X1: 95, Top: 140},
			},
		},
		{
			"no marker in second column",
			[]pdfx.WordToken{
				{Text: "PNA", X0: 50, X1: 72, Top: 100},
				{Text: "6707", X0: 300, X1: 330, Top: 100},
				{Text: "THD", X0: 182, X1: 205, Top: 115},
				{Text: "LUCKEY", X0: 295, X1: 315, Top: 115},
			},
		},
		{
			"only whitespace tokens",
			[]pdfx.WordToken{
				{Text: "   ", X0: 50, X1: 72, Top: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := ResolveShipTo(tt.words, "PNA"); ok {
				t.Errorf("ResolveShipTo() = %q, want not found", got)
			}
		})
	}
}
