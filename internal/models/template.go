package models

// TemplateExercise is one planned exercise inside a workout template.
type TemplateExercise struct {
	Name   string `json:"name"`
	Muscle string `json:"muscle,omitempty"`
}

// Template is a reusable workout plan. Global templates (IsGlobal) ship with
// the app and are read-only; user templates carry the owner's UserID.
type Template struct {
	ObjectID      string             `json:"objectId,omitempty"`
	Name          string             `json:"name"`
	Goal          string             `json:"goal,omitempty"`
	LastPerformed string             `json:"lastPerformed,omitempty"` // YYYY-MM-DD
	Exercises     []TemplateExercise `json:"exercises"`
	UserID        string             `json:"userId,omitempty"`
	IsGlobal      bool               `json:"isGlobal"`
}
