// Package output provides writers for grouped variants.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-sv/internal/collect"
)

// TabWriter writes grouped variants in tab-delimited format, one variant per line.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Graph_ID",
			"Group_size",
			"Sample",
			"ID",
			"Start",
			"End",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single variant of a group of the given size.
func (tw *TabWriter) Write(v collect.Variant, groupSize int) error {
	id := v.ID
	if id == "" {
		id = "."
	}
	fields := []string{
		v.GraphID,
		strconv.Itoa(groupSize),
		strconv.Itoa(v.Sample),
		id,
		strconv.FormatInt(v.Start, 10),
		strconv.FormatInt(v.End, 10),
	}
	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// WriteGroups writes every group, graph IDs in sorted order.
func (tw *TabWriter) WriteGroups(groups collect.Groups) error {
	for _, id := range groups.Keys() {
		g := groups[id]
		for _, v := range g {
			if err := tw.Write(v, len(g)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes any buffered data.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
