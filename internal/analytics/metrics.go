package analytics

import "strings"

// TotalVolume sums weight × reps over every set in the session. Sets with
// an absent weight or reps contribute zero.
func TotalVolume(s Session) float64 {
	var total float64
	for _, r := range s.Records {
		total += r.Volume()
	}
	return total
}

// SessionDuration returns the session's wall-clock duration, taken from the
// first record, or "0:00" when absent. The value is opaque display text.
func SessionDuration(s Session) string {
	if len(s.Records) == 0 || s.Records[0].Duration == "" {
		return "0:00"
	}
	return s.Records[0].Duration
}

// ExerciseSummary lists the distinct exercise names in the session, in
// first-seen order, joined with ", ". Matching is exact and case-sensitive.
func ExerciseSummary(s Session) string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range s.Records {
		if _, ok := seen[r.ExerciseName]; ok {
			continue
		}
		seen[r.ExerciseName] = struct{}{}
		names = append(names, r.ExerciseName)
	}
	return strings.Join(names, ", ")
}

// PersonalRecordCount reports how many exercises in the session set a new
// all-time best. For each distinct exercise the prior best is the maximum
// weight×reps over that exercise's sets in every *other* session; a set in
// this session must strictly exceed it (ties don't count). With no prior
// history the prior best is zero. Each exercise counts at most once per
// session no matter how many of its sets beat the record.
//
// Sessions are excluded from "prior" by key equality, not slice identity,
// so a session never counts itself even if it appears twice in allSessions.
func PersonalRecordCount(s Session, allSessions []Session) int {
	prevBest := make(map[string]float64)
	for _, other := range allSessions {
		if other.Key == s.Key {
			continue
		}
		for _, r := range other.Records {
			if v := r.Volume(); v > prevBest[r.ExerciseName] {
				prevBest[r.ExerciseName] = v
			}
		}
	}

	count := 0
	counted := make(map[string]struct{})
	for _, r := range s.Records {
		if _, done := counted[r.ExerciseName]; done {
			continue
		}
		if r.Volume() > prevBest[r.ExerciseName] {
			count++
			counted[r.ExerciseName] = struct{}{}
		}
	}
	return count
}
