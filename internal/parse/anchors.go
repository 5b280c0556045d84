package parse

import (
	"fmt"
	"sort"
	"strings"
)

// AnchorKind identifies a marker phrase used to locate fields.
type AnchorKind string

const (
	AnchorItem         AnchorKind = "item"
	AnchorSalesOrder   AnchorKind = "sales_order"
	AnchorCustomerPO   AnchorKind = "customer_po"
	AnchorDeliveryDate AnchorKind = "delivery_date"
)

// SearchStrategy controls how many occurrences of an anchor are recorded.
type SearchStrategy int

const (
	// SearchFirst records only the first occurrence.
	SearchFirst SearchStrategy = iota
	// SearchAll records every occurrence in document order.
	SearchAll
)

// AnchorSpec binds an anchor kind to its literal marker phrase and search
// strategy. Templates declare anchors as data so new document layouts do not
// need new search code.
type AnchorSpec struct {
	Kind     AnchorKind
	Phrase   string
	Strategy SearchStrategy
}

// AnchorSet maps each anchor kind to the ordered line indices where its
// phrase was found.
type AnchorSet map[AnchorKind][]int

// LocateAnchors scans the line sequence once and records anchor positions
// according to each spec's strategy.
func LocateAnchors(lines []string, specs []AnchorSpec) AnchorSet {
	set := make(AnchorSet, len(specs))
	for i, line := range lines {
		for _, spec := range specs {
			if spec.Strategy == SearchFirst && len(set[spec.Kind]) > 0 {
				continue
			}
			if strings.Contains(line, spec.Phrase) {
				set[spec.Kind] = append(set[spec.Kind], i)
			}
		}
	}
	return set
}

// First returns the first recorded position of the given kind.
func (s AnchorSet) First(kind AnchorKind) (int, bool) {
	positions := s[kind]
	if len(positions) == 0 {
		return 0, false
	}
	return positions[0], true
}

// StructuralError reports repeating anchor kinds whose occurrence counts
// disagree. A document with mismatched counts cannot be split into line-item
// groups and is rejected as a whole.
type StructuralError struct {
	Counts map[AnchorKind]int
}

func (e *StructuralError) Error() string {
	kinds := make([]string, 0, len(e.Counts))
	for kind := range e.Counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", kind, e.Counts[AnchorKind(kind)]))
	}
	return "anchor count mismatch: " + strings.Join(parts, ", ")
}

// RequireEqualCounts verifies that all given repeating anchor kinds occur the
// same number of times and returns a StructuralError otherwise.
func (s AnchorSet) RequireEqualCounts(kinds ...AnchorKind) error {
	if len(kinds) == 0 {
		return nil
	}

	want := len(s[kinds[0]])
	mismatch := false
	counts := make(map[AnchorKind]int, len(kinds))
	for _, kind := range kinds {
		counts[kind] = len(s[kind])
		if counts[kind] != want {
			mismatch = true
		}
	}
	if mismatch {
		return &StructuralError{Counts: counts}
	}
	return nil
}
