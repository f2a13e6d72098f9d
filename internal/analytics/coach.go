package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// RecentWindow is how many trailing set records feed the coach context.
const RecentWindow = 20

// emptyHistorySummary keeps the coach prompt well-formed when a user has no
// logged sets yet — never return an empty context string.
const emptyHistorySummary = "No recent workout history available."

// RecentRecords returns the last n records of an already-chronological
// list. It slices the tail by input order and never re-sorts.
func RecentRecords(records []models.SetRecord, n int) []models.SetRecord {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

// Summarize compresses a recent slice of set records into the plain-text
// digest injected as context for the coach chat completion. Two groupings
// are built over the slice: per muscle group (count and most recent date)
// and per exercise. At most the first five distinct exercises are listed,
// in the order they were first encountered — not the most frequent or most
// recent five. Pure string building, no I/O.
func Summarize(records []models.SetRecord) string {
	if len(records) == 0 {
		return emptyHistorySummary
	}

	muscleIdx := make(map[string]int)
	var muscles []muscleGroup
	exerciseIdx := make(map[string]int)
	var exercises []exerciseGroup

	for _, r := range records {
		i, ok := muscleIdx[r.TargetMuscles]
		if !ok {
			i = len(muscles)
			muscleIdx[r.TargetMuscles] = i
			muscles = append(muscles, muscleGroup{name: r.TargetMuscles})
		}
		muscles[i].records = append(muscles[i].records, r)

		j, ok := exerciseIdx[r.ExerciseName]
		if !ok {
			j = len(exercises)
			exerciseIdx[r.ExerciseName] = j
			exercises = append(exercises, exerciseGroup{name: r.ExerciseName})
		}
		exercises[j].records = append(exercises[j].records, r)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent workout summary (last %d workouts):\n\n", len(records))

	b.WriteString("Muscle Groups Trained:\n")
	for _, m := range muscles {
		fmt.Fprintf(&b, "- %s: %d workouts, last on %s\n", m.name, len(m.records), mostRecent(m.records).Date)
	}

	b.WriteString("\nTop Exercises:\n")
	top := exercises
	if len(top) > 5 {
		top = top[:5]
	}
	for _, e := range top {
		latest := mostRecent(e.records)
		fmt.Fprintf(&b, "- %s: %d sessions, latest: %s × %s\n",
			e.name, len(e.records), weightLabel(latest.Weight), repsLabel(latest.Reps))
	}

	return b.String()
}

type muscleGroup struct {
	name    string
	records []models.SetRecord
}

type exerciseGroup struct {
	name    string
	records []models.SetRecord
}

// mostRecent picks the record with the greatest date. Ties resolve to the
// earliest-seen record; only the date is reported so the tiebreak does not
// matter.
func mostRecent(records []models.SetRecord) models.SetRecord {
	best := records[0]
	for _, r := range records[1:] {
		if r.Date > best.Date {
			best = r
		}
	}
	return best
}

// weightLabel renders a weight for the digest: "bodyweight" when the set
// had no weight (or an explicit zero), the bare number otherwise.
func weightLabel(w *float64) string {
	if w == nil || *w == 0 {
		return "bodyweight"
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}

func repsLabel(reps *int) string {
	if reps == nil {
		return "0"
	}
	return strconv.Itoa(*reps)
}
