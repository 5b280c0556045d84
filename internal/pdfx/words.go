package pdfx

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// defaultFontHeight is used when a fragment carries no font size.
	defaultFontHeight = 12.0

	// baselineTolerance is the maximum vertical distance between two text
	// fragments that still counts as the same visual line.
	baselineTolerance = 2.0

	// wordGapTolerance is the maximum horizontal gap between two adjacent
	// fragments that still belong to the same word.
	wordGapTolerance = 2.0
)

// assembleWords converts raw positioned text fragments of one page into word
// tokens. Fragments are grouped by baseline into visual lines, each line is
// sorted left to right, and adjacent fragments closer than wordGapTolerance
// merge into a single word. PDF coordinates grow upward, so tokens are
// converted to top-origin using the page height.
func assembleWords(texts []pdf.Text, pageHeight float64) []WordToken {
	if len(texts) == 0 {
		return nil
	}

	fragments := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		fragments = append(fragments, t)
	}
	if len(fragments) == 0 {
		return nil
	}

	// Sort by baseline (top of page first), then left to right.
	sort.SliceStable(fragments, func(i, j int) bool {
		if fragments[i].Y != fragments[j].Y {
			return fragments[i].Y > fragments[j].Y
		}
		return fragments[i].X < fragments[j].X
	})

	var words []WordToken
	lineStart := 0
	for i := 1; i <= len(fragments); i++ {
		if i < len(fragments) && abs(fragments[i].Y-fragments[lineStart].Y) <= baselineTolerance {
			continue
		}
		words = append(words, mergeLineFragments(fragments[lineStart:i], pageHeight)...)
		lineStart = i
	}

	return words
}

// mergeLineFragments merges the fragments of one visual line into words.
// The slice is already sorted left to right.
func mergeLineFragments(line []pdf.Text, pageHeight float64) []WordToken {
	var words []WordToken
	var current *WordToken
	var currentEnd float64

	for _, frag := range line {
		height := frag.FontSize
		if height == 0 {
			height = defaultFontHeight
		}
		top := pageHeight - frag.Y - height
		if top < 0 {
			top = 0
		}

		text := strings.TrimSpace(frag.S)
		if current != nil && frag.X-currentEnd <= wordGapTolerance {
			current.Text += text
			current.X1 = frag.X + frag.W
			currentEnd = current.X1
			continue
		}

		if current != nil {
			words = append(words, *current)
		}
		current = &WordToken{
			Text:   text,
			X0:     frag.X,
			X1:     frag.X + frag.W,
			Top:    top,
			Bottom: top + height,
		}
		currentEnd = current.X1
	}
	if current != nil {
		words = append(words, *current)
	}

	return words
}

// pageTextFromWords reconstructs the plain text of a page from its word
// tokens: one output line per visual line, words joined with single spaces,
// lines ordered top to bottom.
func pageTextFromWords(words []WordToken) string {
	if len(words) == 0 {
		return ""
	}

	sorted := make([]WordToken, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var builder strings.Builder
	lineTop := sorted[0].Top
	first := true
	for _, w := range sorted {
		switch {
		case first:
			first = false
		case abs(w.Top-lineTop) <= baselineTolerance:
			builder.WriteString(" ")
		default:
			builder.WriteString("\n")
			lineTop = w.Top
		}
		builder.WriteString(w.Text)
	}

	return builder.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
