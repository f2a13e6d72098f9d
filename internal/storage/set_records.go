package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// InsertSetRecords batch-inserts logged sets. Records without an ObjectID
// get a fresh UUID assigned (and returned via the slice). Returns the
// number of rows inserted.
func (db *DB) InsertSetRecords(ctx context.Context, records []models.SetRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	query := `INSERT INTO set_records (id, user_id, date, workout_name, session_key,
		exercise_name, equipment, target_muscles, preparation, notes,
		set_order, weight, reps, duration, seconds) VALUES `
	args := make([]any, 0, len(records)*15)
	valueStrings := make([]string, 0, len(records))

	for i := range records {
		r := &records[i]
		if r.ObjectID == "" {
			r.ObjectID = uuid.NewString()
		}
		base := i * 15
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
			base+9, base+10, base+11, base+12, base+13, base+14, base+15,
		))
		args = append(args, r.ObjectID, r.UserID, r.Date, r.WorkoutName, r.SessionKey,
			r.ExerciseName, r.Equipment, r.TargetMuscles, r.Preparation, r.Notes,
			r.SetOrder, r.Weight, r.Reps, r.Duration, r.Seconds)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT (id) DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting set records: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QuerySetRecords returns every set record for one user, in chronological
// order with stable session/set ordering inside each day. Callers run the
// analytics grouping over this flat list.
func (db *DB) QuerySetRecords(ctx context.Context, userID string) ([]models.SetRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, date, workout_name, session_key, exercise_name,
		        equipment, target_muscles, preparation, notes,
		        set_order, weight, reps, duration, seconds
		 FROM set_records
		 WHERE user_id = $1
		 ORDER BY date ASC, session_key ASC, exercise_name ASC, set_order ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying set records: %w", err)
	}
	defer rows.Close()

	var result []models.SetRecord
	for rows.Next() {
		var r models.SetRecord
		if err := rows.Scan(&r.ObjectID, &r.UserID, &r.Date, &r.WorkoutName, &r.SessionKey,
			&r.ExerciseName, &r.Equipment, &r.TargetMuscles, &r.Preparation, &r.Notes,
			&r.SetOrder, &r.Weight, &r.Reps, &r.Duration, &r.Seconds); err != nil {
			return nil, fmt.Errorf("scanning set record: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// UpdateSetRecord rewrites one logged set by id. The user id never changes
// after creation.
func (db *DB) UpdateSetRecord(ctx context.Context, r models.SetRecord) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE set_records
		 SET date = $2, workout_name = $3, session_key = $4, exercise_name = $5,
		     equipment = $6, target_muscles = $7, preparation = $8, notes = $9,
		     set_order = $10, weight = $11, reps = $12, duration = $13, seconds = $14
		 WHERE id = $1`,
		r.ObjectID, r.Date, r.WorkoutName, r.SessionKey, r.ExerciseName,
		r.Equipment, r.TargetMuscles, r.Preparation, r.Notes,
		r.SetOrder, r.Weight, r.Reps, r.Duration, r.Seconds)
	if err != nil {
		return fmt.Errorf("updating set record %s: %w", r.ObjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set record %s not found", r.ObjectID)
	}
	return nil
}

// DeleteSetRecord removes one logged set by id.
func (db *DB) DeleteSetRecord(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM set_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting set record %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set record %s not found", id)
	}
	return nil
}
