package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// QueryTemplates returns global templates plus the user's own.
func (db *DB) QueryTemplates(ctx context.Context, userID string) ([]models.Template, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, goal, last_performed, exercises, user_id, is_global
		 FROM templates
		 WHERE is_global OR user_id = $1
		 ORDER BY is_global DESC, name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.Template
	for rows.Next() {
		var t models.Template
		var exercisesJSON []byte
		if err := rows.Scan(&t.ObjectID, &t.Name, &t.Goal, &t.LastPerformed,
			&exercisesJSON, &t.UserID, &t.IsGlobal); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		if err := json.Unmarshal(exercisesJSON, &t.Exercises); err != nil {
			return nil, fmt.Errorf("decoding template exercises: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// InsertTemplate adds a user template and returns its id.
func (db *DB) InsertTemplate(ctx context.Context, t models.Template) (string, error) {
	if t.ObjectID == "" {
		t.ObjectID = uuid.NewString()
	}
	exercisesJSON, err := json.Marshal(t.Exercises)
	if err != nil {
		return "", fmt.Errorf("encoding template exercises: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO templates (id, name, goal, last_performed, exercises, user_id, is_global)
		 VALUES ($1, $2, $3, $4, $5, $6, false)`,
		t.ObjectID, t.Name, t.Goal, t.LastPerformed, exercisesJSON, t.UserID)
	if err != nil {
		return "", fmt.Errorf("inserting template: %w", err)
	}
	return t.ObjectID, nil
}

// UpdateTemplate rewrites a user template. Global templates are read-only.
func (db *DB) UpdateTemplate(ctx context.Context, t models.Template) error {
	exercisesJSON, err := json.Marshal(t.Exercises)
	if err != nil {
		return fmt.Errorf("encoding template exercises: %w", err)
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE templates
		 SET name = $2, goal = $3, last_performed = $4, exercises = $5
		 WHERE id = $1 AND NOT is_global`,
		t.ObjectID, t.Name, t.Goal, t.LastPerformed, exercisesJSON)
	if err != nil {
		return fmt.Errorf("updating template %s: %w", t.ObjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %s not found or read-only", t.ObjectID)
	}
	return nil
}

// TouchTemplateLastPerformed stamps the template after a workout logged
// from it finishes.
func (db *DB) TouchTemplateLastPerformed(ctx context.Context, id, date string) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE templates SET last_performed = $2 WHERE id = $1`, id, date)
	if err != nil {
		return fmt.Errorf("stamping template %s: %w", id, err)
	}
	return nil
}

// DeleteTemplate removes a user template. Global templates are protected.
func (db *DB) DeleteTemplate(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM templates WHERE id = $1 AND NOT is_global`, id)
	if err != nil {
		return fmt.Errorf("deleting template %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %s not found or read-only", id)
	}
	return nil
}
