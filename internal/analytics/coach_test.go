package analytics

import (
	"strings"
	"testing"

	"github.com/lynx-zenchar/builtbuff/internal/models"
)

func coachRec(date, exercise, muscle string, weight *float64, reps *int) models.SetRecord {
	return models.SetRecord{
		UserID:        "u1",
		Date:          date,
		ExerciseName:  exercise,
		TargetMuscles: muscle,
		Weight:        weight,
		Reps:          reps,
	}
}

// TestRecentRecordsTail verifies the slice is the tail of the input by
// order, not a re-sorted selection.
func TestRecentRecordsTail(t *testing.T) {
	var records []models.SetRecord
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		records = append(records, coachRec(d, "Squat", "Legs", fptr(100), iptr(5)))
	}

	got := RecentRecords(records, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Date != "2024-01-02" || got[1].Date != "2024-01-03" {
		t.Errorf("tail dates = %q, %q, want the last two input records", got[0].Date, got[1].Date)
	}

	short := RecentRecords(records, 20)
	if len(short) != 3 {
		t.Errorf("short input len = %d, want all 3", len(short))
	}
}

// TestSummarizeEmpty verifies the fixed placeholder keeps the prompt
// well-formed when there is no history.
func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got != "No recent workout history available." {
		t.Errorf("Summarize(nil) = %q, want fixed placeholder", got)
	}
}

// TestSummarizeBoundedExercises verifies that with 8 distinct exercises the
// digest lists exactly 5, in first-encountered order — never alphabetical
// or by frequency.
func TestSummarizeBoundedExercises(t *testing.T) {
	names := []string{"Zercher Squat", "Bench Press", "Yoga Pushup", "Deadlift",
		"Arnold Press", "Row", "Curl", "Dip"}
	var records []models.SetRecord
	for i, n := range names {
		// Later exercises appear more often; the cutoff must still be
		// first-seen order.
		for j := 0; j <= i; j++ {
			records = append(records, coachRec("2024-02-20", n, "Mixed", fptr(50), iptr(10)))
		}
	}

	out := Summarize(records)
	_, exerciseSection, ok := strings.Cut(out, "Top Exercises:\n")
	if !ok {
		t.Fatalf("digest missing exercise section:\n%s", out)
	}

	lines := strings.Split(strings.TrimRight(exerciseSection, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("exercise lines = %d, want 5", len(lines))
	}
	for i, want := range names[:5] {
		if !strings.HasPrefix(lines[i], "- "+want+":") {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], "- "+want+":")
		}
	}
}

// TestSummarizeMuscleLines verifies per-muscle counts and the most recent
// training date per group.
func TestSummarizeMuscleLines(t *testing.T) {
	records := []models.SetRecord{
		coachRec("2024-02-18", "Bench Press", "Chest", fptr(100), iptr(5)),
		coachRec("2024-02-20", "Incline Press", "Chest", fptr(80), iptr(8)),
		coachRec("2024-02-19", "Squat", "Legs", fptr(140), iptr(5)),
	}

	out := Summarize(records)
	if !strings.Contains(out, "- Chest: 2 workouts, last on 2024-02-20\n") {
		t.Errorf("digest missing chest line:\n%s", out)
	}
	if !strings.Contains(out, "- Legs: 1 workouts, last on 2024-02-19\n") {
		t.Errorf("digest missing legs line:\n%s", out)
	}
	if !strings.HasPrefix(out, "Recent workout summary (last 3 workouts):") {
		t.Errorf("digest header wrong:\n%s", out)
	}
}

// TestSummarizeBodyweight verifies a set without weight renders as
// "bodyweight" in the latest pairing.
func TestSummarizeBodyweight(t *testing.T) {
	records := []models.SetRecord{
		coachRec("2024-02-20", "Pull Up", "Back", nil, iptr(12)),
	}

	out := Summarize(records)
	if !strings.Contains(out, "- Pull Up: 1 sessions, latest: bodyweight × 12\n") {
		t.Errorf("digest missing bodyweight line:\n%s", out)
	}
}
