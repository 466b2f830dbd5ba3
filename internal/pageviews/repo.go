package pageviews

import (
	"context"
	"fmt"

	"github.com/flix/flixsite/internal/analytics"
)

// PathCount is the number of hits recorded for one path.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Record implements analytics.Sink. Replaying a hit with a known ID is a no-op.
func (s *Store) Record(ctx context.Context, hit analytics.Hit) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO hits (id, kind, path, recorded_at) VALUES (?, ?, ?, ?)`,
		hit.ID, hit.Kind, hit.Path, hit.At)
	if err != nil {
		return fmt.Errorf("pageviews: record: %w", err)
	}
	return nil
}

// Counts returns per-path hit counts of the given kind, most viewed first.
func (s *Store) Counts(ctx context.Context, kind string) ([]PathCount, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT path, COUNT(*) AS n
		FROM hits
		WHERE kind = ?
		GROUP BY path
		ORDER BY n DESC, path ASC
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("pageviews: counts: %w", err)
	}
	defer rows.Close()

	out := []PathCount{}
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, fmt.Errorf("pageviews: scan: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// Total returns the number of hits of the given kind.
func (s *Store) Total(ctx context.Context, kind string) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM hits WHERE kind = ?`, kind).Scan(&n); err != nil {
		return 0, fmt.Errorf("pageviews: total: %w", err)
	}
	return n, nil
}
