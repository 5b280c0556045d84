package pdfx

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestAssembleWords(t *testing.T) {
	// Two visual lines. "Pur" and "chase" nearly touch and must merge into
	// one word; "Order" sits a word gap away on the same baseline.
	texts := []pdf.Text{
		{S: "Order", X: 113, Y: 700, W: 35, FontSize: 12},
		{S: "KP123", X: 50, Y: 680, W: 40, FontSize: 12},
		{S: "chase", X: 70.5, Y: 700, W: 30, FontSize: 12},
		{S: "Pur", X: 50, Y: 700, W: 20, FontSize: 12},
		{S: "   ", X: 200, Y: 700, W: 10, FontSize: 12},
	}

	words := assembleWords(texts, 792)
	if len(words) != 3 {
		t.Fatalf("assembleWords() produced %d words, want 3: %v", len(words), words)
	}

	if words[0].Text != "Purchase" {
		t.Errorf("words[0].Text = %q, want Purchase", words[0].Text)
	}
	if words[0].X0 != 50 || words[0].X1 != 100.5 {
		t.Errorf("words[0] span = [%v, %v], want [50, 100.5]", words[0].X0, words[0].X1)
	}
	if words[0].Top != 80 || words[0].Bottom != 92 {
		t.Errorf("words[0] vertical = [%v, %v], want [80, 92]", words[0].Top, words[0].Bottom)
	}

	if words[1].Text != "Order" {
		t.Errorf("words[1].Text = %q, want Order", words[1].Text)
	}
	if words[2].Text != "KP123" {
		t.Errorf("words[2].Text = %q, want KP123", words[2].Text)
	}
	if words[2].Top != 100 {
		t.Errorf("words[2].Top = %v, want 100", words[2].Top)
	}
}

func TestAssembleWordsEmpty(t *testing.T) {
	if got := assembleWords(nil, 792); got != nil {
		t.Errorf("assembleWords(nil) = %v, want nil", got)
	}
	onlyBlank := []pdf.Text{{S: "  ", X: 10, Y: 700, W: 5}}
	if got := assembleWords(onlyBlank, 792); got != nil {
		t.Errorf("assembleWords(blank) = %v, want nil", got)
	}
}

func TestAssembleWordsDefaultFontHeight(t *testing.T) {
	texts := []pdf.Text{{S: "X", X: 10, Y: 700, W: 8}}

	words := assembleWords(texts, 792)
	if len(words) != 1 {
		t.Fatalf("assembleWords() produced %d words, want 1", len(words))
	}
	if got := words[0].Bottom - words[0].Top; got != defaultFontHeight {
		t.Errorf("word height = %v, want %v", got, defaultFontHeight)
	}
}

func TestPageTextFromWords(t *testing.T) {
	words := []WordToken{
		{Text: "KP123", X0: 50, X1: 90, Top: 100, Bottom: 112},
		{Text: "Purchase", X0: 50, X1: 100, Top: 80, Bottom: 92},
		{Text: "Order", X0: 113, X1: 148, Top: 80.5, Bottom: 92.5},
	}

	got := pageTextFromWords(words)
	want := "Purchase Order\nKP123"
	if got != want {
		t.Errorf("pageTextFromWords() = %q, want %q", got, want)
	}

	if got := pageTextFromWords(nil); got != "" {
		t.Errorf("pageTextFromWords(nil) = %q, want empty", got)
	}
}
