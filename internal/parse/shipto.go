package parse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jeffery5bai/pdf2excel/internal/pdfx"
)

// Tolerances for the spatial ship-to resolution. The retail template prints
// the bill-to and ship-to blocks as two columns under one header row; the
// ship-to column has no textual label of its own, so it is located by
// geometry relative to the bill-to anchor.
const (
	// shipToLineTolerance is the maximum vertical distance between two
	// tokens that still counts as the same visual line.
	shipToLineTolerance = 3.0
	// shipToClusterHeight bounds how far below a header token its column
	// content may start.
	shipToClusterHeight = 25.0
	// shipToClusterWidth bounds how far right of a header token its column
	// content may extend.
	shipToClusterWidth = 150.0
	// shipToColumnMargin shifts the synthesized second-column boundary left
	// of the midpoint between the first two header tokens.
	shipToColumnMargin = 10.0
	// shipToMarker is the single-letter tag leading the ship-to block.
	shipToMarker = "S"
)

var shipToMarkerPrefix = regexp.MustCompile(`(?i)^\s*S[\s,:-]*`)

// ResolveShipTo extracts the first line of the ship-to block from first-page
// word tokens:
//
//  1. normalize tokens and find the most isolated occurrence of the anchor
//     keyword (the one sharing its visual line with the fewest tokens),
//  2. collect the anchor's visual line and synthesize a placeholder token
//     marking the otherwise-invisible second column boundary,
//  3. build one spatial cluster per header token (everything within the
//     bounded window below and to the right of it),
//  4. take the second cluster, locate its "S" marker token, join the marker's
//     visual line left to right, and strip the leading marker.
//
// The algorithm is deliberately coupled to the fixed retail template: exactly
// two relevant columns, in this order. Any precondition failure reports the
// field as not found rather than guessing.
func ResolveShipTo(words []pdfx.WordToken, anchorKeyword string) (string, bool) {
	if len(words) == 0 {
		return "", false
	}

	normalized := make([]pdfx.WordToken, 0, len(words))
	for _, w := range words {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			continue
		}
		normalized = append(normalized, w)
	}
	if len(normalized) == 0 {
		return "", false
	}

	anchor, ok := mostIsolatedAnchor(normalized, anchorKeyword)
	if !ok {
		return "", false
	}

	anchorLine := tokensOnLine(normalized, anchor.Top)
	if len(anchorLine) < 2 {
		return "", false
	}

	// Synthesize the second-column boundary between the first two header
	// tokens and re-sort the header line left to right.
	boundary := anchorLine[0]
	boundary.Text = "SECOND_COLUMN"
	boundary.X0 = (anchorLine[0].X0+anchorLine[1].X0)/2 - shipToColumnMargin
	boundary.X1 = (anchorLine[0].X1 + anchorLine[1].X1) / 2
	anchorLine = append(anchorLine[:1], append([]pdfx.WordToken{boundary}, anchorLine[1:]...)...)
	sort.SliceStable(anchorLine, func(i, j int) bool {
		return anchorLine[i].X0 < anchorLine[j].X0
	})

	clusters := make([][]pdfx.WordToken, 0, len(anchorLine))
	for _, header := range anchorLine {
		cluster := []pdfx.WordToken{header}
		for _, w := range normalized {
			dy := w.Top - header.Top
			dx := w.X1 - header.X0
			if dy >= 0 && dy <= shipToClusterHeight && dx >= 0 && dx <= shipToClusterWidth {
				cluster = append(cluster, w)
			}
		}
		clusters = append(clusters, cluster)
	}
	if len(clusters) < 2 {
		return "", false
	}

	// The second column is the ship-to block.
	shipCluster := clusters[1]
	marker, ok := findMarker(shipCluster)
	if !ok {
		return "", false
	}

	lineTokens := make([]pdfx.WordToken, 0, len(shipCluster))
	for _, w := range shipCluster {
		if abs(w.Top-marker.Top) <= shipToLineTolerance {
			lineTokens = append(lineTokens, w)
		}
	}
	sort.SliceStable(lineTokens, func(i, j int) bool {
		if lineTokens[i].Top != lineTokens[j].Top {
			return lineTokens[i].Top < lineTokens[j].Top
		}
		return lineTokens[i].X0 < lineTokens[j].X0
	})

	parts := make([]string, 0, len(lineTokens))
	for _, w := range lineTokens {
		parts = append(parts, w.Text)
	}
	line := strings.TrimSpace(strings.Join(parts, " "))
	line = strings.TrimSpace(shipToMarkerPrefix.ReplaceAllString(line, ""))
	if line == "" {
		return "", false
	}
	return line, true
}

// mostIsolatedAnchor returns the keyword occurrence sharing its visual line
// with the fewest tokens. The keyword appears in several places on the page;
// the most isolated one is empirically the column header.
func mostIsolatedAnchor(words []pdfx.WordToken, keyword string) (pdfx.WordToken, bool) {
	upper := strings.ToUpper(keyword)

	var best pdfx.WordToken
	bestCount := -1
	for _, w := range words {
		if !strings.Contains(strings.ToUpper(w.Text), upper) {
			continue
		}
		count := len(tokensOnLine(words, w.Top))
		if bestCount == -1 || count < bestCount {
			best = w
			bestCount = count
		}
	}
	if bestCount == -1 {
		return pdfx.WordToken{}, false
	}
	return best, true
}

// tokensOnLine collects every token within the vertical line tolerance of
// the given baseline.
func tokensOnLine(words []pdfx.WordToken, top float64) []pdfx.WordToken {
	var line []pdfx.WordToken
	for _, w := range words {
		if abs(w.Top-top) <= shipToLineTolerance {
			line = append(line, w)
		}
	}
	return line
}

func findMarker(cluster []pdfx.WordToken) (pdfx.WordToken, bool) {
	for _, w := range cluster {
		if w.Text == shipToMarker {
			return w, true
		}
	}
	return pdfx.WordToken{}, false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
