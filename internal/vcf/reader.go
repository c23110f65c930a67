package vcf

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader reads records from a VCF file.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	path       string
	lineNumber int
	header     []string
}

// NewReader opens a VCF file for reading.
// A path that cannot be opened or read fails with ErrMissingFile.
// Supports both plain VCF and gzipped VCF (.vcf.gz) files; "-" reads stdin.
func NewReader(path string) (*Reader, error) {
	if path == "-" {
		return NewReaderFrom(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingFile, path, err)
	}

	r := &Reader{file: file, path: path}

	// Check for gzip magic number (0x1f, 0x8b)
	buf := make([]byte, 2)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		file.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingFile, path, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingFile, path, err)
	}

	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	} else {
		r.reader = bufio.NewReader(file)
	}

	return r, nil
}

// NewReaderFrom creates a reader over an already open stream.
func NewReaderFrom(rd io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(rd)}
}

// Next returns the next data record, skipping blank lines and '#' lines.
// Returns nil, nil at end of input.
func (r *Reader) Next() (*Record, error) {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read vcf line: %w", err)
		}
		if line == "" && err != nil {
			return nil, nil
		}
		r.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			r.header = append(r.header, line)
			continue
		}

		rec, perr := ParseRecord(line)
		if perr != nil {
			return nil, &ParseError{Path: r.path, Line: r.lineNumber, Err: perr}
		}
		return rec, nil
	}
}

// Header returns the '#' lines read so far.
func (r *Reader) Header() []string {
	return r.header
}

// Path returns the file path, or "" for stream readers.
func (r *Reader) Path() string {
	return r.path
}

// LineNumber returns the current line number being processed.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the reader and underlying file.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
