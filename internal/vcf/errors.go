package vcf

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is returned for data lines with fewer than 8 columns.
	ErrMalformedRecord = errors.New("malformed vcf record")
	// ErrInvalidPosition is returned when POS is not an integer.
	ErrInvalidPosition = errors.New("invalid vcf position")
	// ErrInvalidLength is returned when SVLEN is missing or not a number.
	ErrInvalidLength = errors.New("invalid sv length")
	// ErrMissingFile is returned when an input file cannot be opened.
	ErrMissingFile = errors.New("missing input file")
)

// ParseError represents an error during VCF parsing with file and line context.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("vcf parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("vcf parse error in %s at line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
