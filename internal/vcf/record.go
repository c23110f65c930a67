// Package vcf provides VCF record parsing for structural variants.
package vcf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column indexes of the mandatory VCF fields.
const (
	ColChrom = iota
	ColPos
	ColID
	ColRef
	ColAlt
	ColQual
	ColFilter
	ColInfo

	// MinColumns is the number of mandatory columns in a VCF data line.
	MinColumns
)

// Recognized INFO keys.
const (
	InfoSVLen   = "SVLEN"
	InfoSVType  = "SVTYPE"
	InfoSeq     = "SEQ"
	InfoStrands = "STRANDS"
)

// SV type tags derived from allele lengths.
const (
	TypeInsertion = "INS"
	TypeDeletion  = "DEL"
)

// Record is a single VCF data line kept as its raw tab-separated tokens.
// Derived values (length, type, sequence, ...) are computed on demand so that
// the line can be reconstructed exactly after in-place edits.
type Record struct {
	line   string
	fields []string
}

// ParseRecord splits a VCF data line into a Record.
// Only the column count is checked; all other validation is deferred to the
// accessor that needs the value.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < MinColumns {
		return nil, fmt.Errorf("%w: expected at least %d columns, found %d: %q",
			ErrMalformedRecord, MinColumns, len(fields), line)
	}
	return &Record{line: line, fields: fields}, nil
}

// Line returns the line the record was parsed from, without later edits.
func (r *Record) Line() string {
	return r.line
}

// Fields returns a copy of the record's tokens.
func (r *Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// String rejoins the tokens with tabs, including any edits.
func (r *Record) String() string {
	return strings.Join(r.fields, "\t")
}

func (r *Record) Chrom() string     { return r.fields[ColChrom] }
func (r *Record) ID() string        { return r.fields[ColID] }
func (r *Record) Ref() string       { return r.fields[ColRef] }
func (r *Record) Alt() string       { return r.fields[ColAlt] }
func (r *Record) Qual() string      { return r.fields[ColQual] }
func (r *Record) Filter() string    { return r.fields[ColFilter] }
func (r *Record) InfoField() string { return r.fields[ColInfo] }

func (r *Record) SetChrom(s string) { r.fields[ColChrom] = s }
func (r *Record) SetID(s string)    { r.fields[ColID] = s }
func (r *Record) SetRef(s string)   { r.fields[ColRef] = s }
func (r *Record) SetAlt(s string)   { r.fields[ColAlt] = s }

// SetPos overwrites the POS column.
func (r *Record) SetPos(pos int64) {
	r.fields[ColPos] = strconv.FormatInt(pos, 10)
}

// Position returns the 1-based POS column.
func (r *Record) Position() (int64, error) {
	pos, err := strconv.ParseInt(r.fields[ColPos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPosition, r.fields[ColPos])
	}
	return pos, nil
}

// End returns Position() + Length().
func (r *Record) End() (int64, error) {
	pos, err := r.Position()
	if err != nil {
		return 0, err
	}
	return pos + r.Length(), nil
}

// DeclaredLength returns SVLEN rounded half-up to the nearest integer,
// clamped to the int64 range.
// It fails with ErrInvalidLength when SVLEN is absent or not a number.
func (r *Record) DeclaredLength() (int64, error) {
	if !r.HasInfo(InfoSVLen) {
		return 0, fmt.Errorf("%w: no %s", ErrInvalidLength, InfoSVLen)
	}
	s := r.Info(InfoSVLen)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidLength, InfoSVLen, s)
	}
	return roundLength(f), nil
}

// roundLength rounds half-up, saturating at the int64 limits so the sign of
// huge values survives.
func roundLength(f float64) int64 {
	r := math.Floor(f + 0.5)
	switch {
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}

// Length returns the signed SV length: positive for insertions, negative
// otherwise. SVLEN wins when usable; otherwise the length of Sequence() is
// used, signed by Type().
func (r *Record) Length() int64 {
	if n, err := r.DeclaredLength(); err == nil {
		return n
	}
	n := int64(len(r.Sequence()))
	if r.Type() == TypeInsertion {
		return n
	}
	return -n
}

// Type returns SVTYPE when set, the name inside a symbolic ALT such as
// <DUP>, or a type inferred from the allele lengths. Equal lengths give "".
func (r *Record) Type() string {
	if t := r.Info(InfoSVType); t != "" {
		return t
	}
	ref, alt := r.Ref(), r.Alt()
	if len(alt) >= 2 && strings.HasPrefix(alt, "<") && strings.HasSuffix(alt, ">") {
		return alt[1 : len(alt)-1]
	}
	switch {
	case len(ref) > len(alt):
		return TypeDeletion
	case len(ref) < len(alt):
		return TypeInsertion
	default:
		return ""
	}
}

// Strand returns the STRANDS INFO value, or "" when absent.
func (r *Record) Strand() string {
	return r.Info(InfoStrands)
}

// GraphID returns the grouping key for the record: the chromosome, optionally
// followed by the type and strand.
func (r *Record) GraphID(opts GraphOptions) string {
	id := r.Chrom()
	if opts.UseType {
		id += "_" + r.Type()
	}
	if opts.UseStrand {
		id += "_" + r.Strand()
	}
	return id
}
