// Package importer loads workout history exported as CSV into the database,
// tracking processed files so re-runs never duplicate data.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// csvHeader is the expected first row of an export file.
var csvHeader = []string{
	"Date", "Workout Name", "Duration", "Exercise Name", "Equipment",
	"Target Muscles", "Set Order", "Weight", "Reps", "Notes",
}

// ParseCSV reads a workout export and returns one SetRecord per data row.
// Weight and Reps columns may be empty, which is preserved as nil rather
// than zero. Rows keep file order so set order within a workout survives.
func ParseCSV(r io.Reader) ([]models.SetRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var records []models.SetRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec := models.SetRecord{
			Date:          strings.TrimSpace(row[0]),
			WorkoutName:   strings.TrimSpace(row[1]),
			Duration:      strings.TrimSpace(row[2]),
			ExerciseName:  strings.TrimSpace(row[3]),
			Equipment:     strings.TrimSpace(row[4]),
			TargetMuscles: strings.TrimSpace(row[5]),
			Notes:         strings.TrimSpace(row[9]),
		}
		if rec.Date == "" || rec.ExerciseName == "" {
			return nil, fmt.Errorf("line %d: date and exercise name are required", line)
		}

		if s := strings.TrimSpace(row[6]); s != "" {
			rec.SetOrder, err = strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: set order %q: %w", line, s, err)
			}
		}
		if s := strings.TrimSpace(row[7]); s != "" {
			w, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: weight %q: %w", line, s, err)
			}
			rec.Weight = &w
		}
		if s := strings.TrimSpace(row[8]); s != "" {
			reps, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: reps %q: %w", line, s, err)
			}
			rec.Reps = &reps
		}

		records = append(records, rec)
	}

	return records, nil
}

func checkHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, want := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}
