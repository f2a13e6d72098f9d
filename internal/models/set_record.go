package models

// SetRecord is one logged set of one exercise — the atomic persisted unit.
// A workout session is never stored as its own entity; it is derived by
// grouping set records on SessionKey (or Date+WorkoutName when the key is
// absent, which older clients never sent).
type SetRecord struct {
	ObjectID      string   `json:"objectId,omitempty"`
	UserID        string   `json:"userId"`
	Date          string   `json:"date"` // YYYY-MM-DD
	WorkoutName   string   `json:"workoutName"`
	SessionKey    string   `json:"sessionKey,omitempty"`
	ExerciseName  string   `json:"exerciseName"`
	Equipment     string   `json:"equipment,omitempty"`
	TargetMuscles string   `json:"targetMuscles,omitempty"`
	Preparation   string   `json:"preparation,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	SetOrder      int      `json:"setOrder"`
	Weight        *float64 `json:"weight,omitempty"`
	Reps          *int     `json:"reps,omitempty"`
	// Duration is the wall-clock session duration as "minutes:seconds".
	// Redundantly stored on every set of a session; the first set's value
	// is authoritative. Opaque display text, never parsed downstream.
	Duration string `json:"duration,omitempty"`
	Seconds  int    `json:"seconds,omitempty"`
}

// Volume returns weight × reps for this set, treating an absent weight or
// reps as zero. The absence itself is preserved for display and editing.
func (r SetRecord) Volume() float64 {
	if r.Weight == nil || r.Reps == nil {
		return 0
	}
	return *r.Weight * float64(*r.Reps)
}

// Exercise is one entry in the exercise catalog. A record with an empty
// UserID is part of the global catalog visible to everyone.
type Exercise struct {
	ObjectID      string `json:"objectId,omitempty"`
	ExerciseName  string `json:"exerciseName"`
	Equipment     string `json:"equipment,omitempty"`
	TargetMuscles string `json:"targetMuscles,omitempty"`
	Preparation   string `json:"preparation,omitempty"`
	UserID        string `json:"userId,omitempty"`
}
