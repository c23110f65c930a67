// Package collect reads SV calls from many VCF files and bins them by graph ID.
package collect

import (
	"sort"

	"github.com/inodb/vibe-sv/internal/vcf"
)

// Variant is the part of a VCF record needed for merging.
type Variant struct {
	Sample  int    // zero-based index of the source file in the file list
	ID      string // VCF ID column
	Start   int64
	End     int64 // Start + signed length
	GraphID string
}

// NewVariant summarizes rec as a Variant from the given sample.
func NewVariant(rec *vcf.Record, sample int, opts vcf.GraphOptions) (Variant, error) {
	start, err := rec.Position()
	if err != nil {
		return Variant{}, err
	}
	return Variant{
		Sample:  sample,
		ID:      rec.ID(),
		Start:   start,
		End:     start + rec.Length(),
		GraphID: rec.GraphID(opts),
	}, nil
}

// Groups maps graph IDs to the variants carrying them, in encounter order.
type Groups map[string][]Variant

// Add appends v to the group for its graph ID.
func (g Groups) Add(v Variant) {
	g[v.GraphID] = append(g[v.GraphID], v)
}

// Merge appends every group of other after the matching group of g.
func (g Groups) Merge(other Groups) {
	for _, id := range other.Keys() {
		g[id] = append(g[id], other[id]...)
	}
}

// Keys returns the graph IDs in sorted order.
func (g Groups) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// VariantCount returns the number of variants across all groups.
func (g Groups) VariantCount() int {
	n := 0
	for _, vs := range g {
		n += len(vs)
	}
	return n
}
