package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-sv/internal/collect"
)

// WriteGroups batch-inserts every grouped variant of a run using the Appender API.
// The position of a variant within its group is kept in the ordinal column.
func (s *Store) WriteGroups(runID string, groups collect.Groups) error {
	if len(groups) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "sv_variants")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, id := range groups.Keys() {
		for i, v := range groups[id] {
			if err := appender.AppendRow(
				runID, id, int64(i), int64(v.Sample), v.ID, v.Start, v.End,
			); err != nil {
				return fmt.Errorf("append variant %s: %w", v.ID, err)
			}
		}
	}

	return appender.Flush()
}

// LookupGroup returns the variants of one graph ID in their original order.
func (s *Store) LookupGroup(runID, graphID string) ([]collect.Variant, error) {
	rows, err := s.db.Query(`SELECT sample, variant_id, start_pos, end_pos
		FROM sv_variants
		WHERE run_id=? AND graph_id=?
		ORDER BY ordinal`, runID, graphID)
	if err != nil {
		return nil, fmt.Errorf("query group: %w", err)
	}
	defer rows.Close()

	var vs []collect.Variant
	for rows.Next() {
		v := collect.Variant{GraphID: graphID}
		var sample int64
		if err := rows.Scan(&sample, &v.ID, &v.Start, &v.End); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		v.Sample = int(sample)
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	return vs, nil
}

// GroupSizes returns the number of variants per graph ID for a run.
func (s *Store) GroupSizes(runID string) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT graph_id, count(*)
		FROM sv_variants WHERE run_id=? GROUP BY graph_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query group sizes: %w", err)
	}
	defer rows.Close()

	sizes := make(map[string]int)
	for rows.Next() {
		var id string
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan group size: %w", err)
		}
		sizes[id] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group sizes: %w", err)
	}
	return sizes, nil
}

// ClearRun removes everything stored for a run.
func (s *Store) ClearRun(runID string) error {
	if _, err := s.db.Exec("DELETE FROM sv_variants WHERE run_id=?", runID); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM sv_sources WHERE run_id=?", runID)
	return err
}
