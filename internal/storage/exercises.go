package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// QueryExercises returns the exercise catalog visible to a user: global
// entries (empty user_id) plus the user's own, sorted by name.
func (db *DB) QueryExercises(ctx context.Context, userID string) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, exercise_name, equipment, target_muscles, preparation, user_id
		 FROM exercises
		 WHERE user_id = '' OR user_id = $1
		 ORDER BY exercise_name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ObjectID, &e.ExerciseName, &e.Equipment,
			&e.TargetMuscles, &e.Preparation, &e.UserID); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// InsertExercise adds a user-specific catalog entry and returns its id.
func (db *DB) InsertExercise(ctx context.Context, e models.Exercise) (string, error) {
	if e.ObjectID == "" {
		e.ObjectID = uuid.NewString()
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, exercise_name, equipment, target_muscles, preparation, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ObjectID, e.ExerciseName, e.Equipment, e.TargetMuscles, e.Preparation, e.UserID)
	if err != nil {
		return "", fmt.Errorf("inserting exercise: %w", err)
	}
	return e.ObjectID, nil
}
