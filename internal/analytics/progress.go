package analytics

import (
	"sort"

	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// WeightPoint is one chart point in an exercise's weight progression.
type WeightPoint struct {
	Date   string   `json:"date"`
	Weight *float64 `json:"weight"`
}

// ExerciseProgression is the date-ordered weight series for one exercise.
type ExerciseProgression struct {
	Exercise string        `json:"exercise"`
	Points   []WeightPoint `json:"points"`
}

// MuscleVolume is the accumulated training volume for one muscle group.
type MuscleVolume struct {
	Muscle string  `json:"muscle"`
	Volume float64 `json:"volume"`
}

// DateCount is the number of logged set records on one date.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeightProgression groups records by exercise name and returns each
// exercise's sets as a chronologically ascending weight series. Exercises
// appear in first-occurrence order. Multiple sets on the same date each
// produce their own point — same-date entries are intentionally not merged,
// and the sort is stable so they keep input order.
func WeightProgression(records []models.SetRecord) []ExerciseProgression {
	index := make(map[string]int)
	var series []ExerciseProgression

	for _, r := range records {
		i, ok := index[r.ExerciseName]
		if !ok {
			i = len(series)
			index[r.ExerciseName] = i
			series = append(series, ExerciseProgression{Exercise: r.ExerciseName})
		}
		series[i].Points = append(series[i].Points, WeightPoint{Date: r.Date, Weight: r.Weight})
	}

	for i := range series {
		pts := series[i].Points
		sort.SliceStable(pts, func(a, b int) bool {
			return pts[a].Date < pts[b].Date
		})
	}
	return series
}

// VolumeByMuscle sums weight × reps per target-muscle value across all
// records regardless of session. One entry per distinct muscle string, in
// first-occurrence order.
func VolumeByMuscle(records []models.SetRecord) []MuscleVolume {
	index := make(map[string]int)
	var out []MuscleVolume

	for _, r := range records {
		i, ok := index[r.TargetMuscles]
		if !ok {
			i = len(out)
			index[r.TargetMuscles] = i
			out = append(out, MuscleVolume{Muscle: r.TargetMuscles})
		}
		out[i].Volume += r.Volume()
	}
	return out
}

// FrequencyByDate counts set records per distinct date, ascending by date.
// It deliberately counts individual sets, not sessions: a 6-set workout on
// one day reports count 6. That matches the charts this feeds.
func FrequencyByDate(records []models.SetRecord) []DateCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Date]++
	}

	out := make([]DateCount, 0, len(counts))
	for date, n := range counts {
		out = append(out, DateCount{Date: date, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
