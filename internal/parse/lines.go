// Package parse implements positional field extraction for the two supported
// purchase-order document templates. Field positions are located by counting
// lines from document top and by matching literal anchor phrases; one retail
// field is resolved spatially from word coordinates.
package parse

import "strings"

// BuildLines normalizes raw extracted page text into the ordered line
// sequence every positional offset refers to: split on line breaks, trim each
// line, drop lines that are empty after trimming. An empty input yields an
// empty sequence.
func BuildLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
