package storage

import (
	"context"
	"fmt"
)

// DataStats holds aggregate statistics about one user's stored data,
// shown on the profile screen.
type DataStats struct {
	TotalSets      int64   `json:"total_sets"`
	TotalSessions  int64   `json:"total_sessions"`
	TotalExercises int64   `json:"total_exercises"`
	EarliestDate   *string `json:"earliest_date"`
	LatestDate     *string `json:"latest_date"`
}

// GetDataStats returns aggregate statistics for a user's logged history.
// The session count mirrors the analytics grouping rule exactly: explicit
// keys and derived date+name keys live in separate namespaces ('e'/'d'),
// joined by the same unit separator (chr(31)) the grouping code uses, and
// rows with no key, date, or name collapse into one shared unkeyed bucket.
func (db *DB) GetDataStats(ctx context.Context, userID string) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(DISTINCT CASE
		            WHEN session_key <> '' THEN 'e' || chr(31) || session_key
		            WHEN date = '' AND workout_name = '' THEN 'd' || chr(31)
		            ELSE 'd' || chr(31) || date || chr(31) || workout_name
		        END),
		        COUNT(DISTINCT exercise_name),
		        MIN(date), MAX(date)
		 FROM set_records WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSets, &stats.TotalSessions, &stats.TotalExercises,
		&stats.EarliestDate, &stats.LatestDate)
	if err != nil {
		return nil, fmt.Errorf("querying data stats: %w", err)
	}

	return stats, nil
}
