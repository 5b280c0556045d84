package batch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeffery5bai/pdf2excel/internal/parse"
)

// keySeparator joins the fields of a composite identity key. The unit
// separator cannot occur in extracted tokens, so joined keys compare in
// tuple order.
const keySeparator = "\x1f"

// Aggregator merges accepted records from many documents: a revised record
// overrides an original sharing the same identity key, duplicates collapse,
// and the final order is a pure function of the identity keys. Running it
// twice over its own output yields identical output.
type Aggregator struct {
	keyFields []string
}

// NewAggregator creates an aggregator deduplicating on the given identity
// key fields, compared in tuple order.
func NewAggregator(keyFields []string) *Aggregator {
	return &Aggregator{keyFields: keyFields}
}

// Aggregate concatenates originals and revisions in that order, keeps the
// last record per identity key (revision precedence, not upload order), and
// sorts ascending by key.
func (a *Aggregator) Aggregate(originals, revised []parse.Record) []parse.Record {
	combined := make([]parse.Record, 0, len(originals)+len(revised))
	combined = append(combined, originals...)
	combined = append(combined, revised...)

	byKey := make(map[string]parse.Record, len(combined))
	for _, rec := range combined {
		byKey[a.keyOf(rec)] = rec
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]parse.Record, 0, len(keys))
	for _, key := range keys {
		result = append(result, byKey[key])
	}
	return result
}

// keyOf builds the identity key of a record. Key fields passed the
// required-field check, so a missing one only happens on caller error and
// maps to an empty component.
func (a *Aggregator) keyOf(rec parse.Record) string {
	parts := make([]string, 0, len(a.keyFields))
	for _, field := range a.keyFields {
		value, ok := rec[field]
		if !ok {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, fmt.Sprintf("%v", value))
	}
	return strings.Join(parts, keySeparator)
}
