package duckdb

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// NewRunID returns a fresh identifier for one export.
func NewRunID() string {
	return uuid.NewString()
}

// FileFingerprint holds stat-based identity for an input VCF.
type FileFingerprint struct {
	Sample  int
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string, sample int) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Sample:  sample,
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime().UTC(),
	}, nil
}

// StatFiles fingerprints each path, using its index as the sample.
func StatFiles(paths []string) ([]FileFingerprint, error) {
	fps := make([]FileFingerprint, 0, len(paths))
	for i, p := range paths {
		fp, err := StatFile(p, i)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		fps = append(fps, fp)
	}
	return fps, nil
}

// WriteSources records the input files of a run.
func (s *Store) WriteSources(runID string, sources []FileFingerprint) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, fp := range sources {
		if _, err := tx.Exec(`INSERT INTO sv_sources VALUES (?, ?, ?, ?, ?)`,
			runID, int64(fp.Sample), fp.Path, fp.Size, fp.ModTime); err != nil {
			return fmt.Errorf("insert source %s: %w", fp.Path, err)
		}
	}
	return tx.Commit()
}

// Sources returns the input files of a run ordered by sample.
func (s *Store) Sources(runID string) ([]FileFingerprint, error) {
	rows, err := s.db.Query(`SELECT sample, path, size, mod_time
		FROM sv_sources WHERE run_id=? ORDER BY sample`, runID)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var fps []FileFingerprint
	for rows.Next() {
		var fp FileFingerprint
		var sample int64
		if err := rows.Scan(&sample, &fp.Path, &fp.Size, &fp.ModTime); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		fp.Sample = int(sample)
		fps = append(fps, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}
	return fps, nil
}
