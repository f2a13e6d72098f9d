package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lynx-zenchar/builtbuff/internal/analytics"
	"github.com/lynx-zenchar/builtbuff/internal/coach"
	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// SessionView is one derived workout session with its computed metrics,
// returned by the history endpoint.
type SessionView struct {
	Date            string             `json:"date"`
	WorkoutName     string             `json:"workoutName"`
	Duration        string             `json:"duration"`
	TotalVolume     float64            `json:"totalVolume"`
	ExerciseSummary string             `json:"exerciseSummary"`
	PersonalRecords int                `json:"personalRecords"`
	Sets            []models.SetRecord `json:"sets"`
}

func userID(r *http.Request) (string, error) {
	id := r.URL.Query().Get("user")
	if id == "" {
		return "", fmt.Errorf("user parameter required")
	}
	return id, nil
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := s.db.QuerySetRecords(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []models.SetRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := s.db.QuerySetRecords(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	sessions := analytics.GroupBySession(records)
	analytics.SortSessionsByDateDesc(sessions)

	views := make([]SessionView, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, SessionView{
			Date:            sess.Date(),
			WorkoutName:     sess.WorkoutName(),
			Duration:        analytics.SessionDuration(sess),
			TotalVolume:     analytics.TotalVolume(sess),
			ExerciseSummary: analytics.ExerciseSummary(sess),
			PersonalRecords: analytics.PersonalRecordCount(sess, sessions),
			Sets:            sess.Records,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// handleCreateRecords accepts a batch of logged sets, one request per
// finished workout. Sets arriving without a session key get one shared UUID
// per (date, workout name) pair so the whole workout groups together later.
func (s *Server) handleCreateRecords(w http.ResponseWriter, r *http.Request) {
	var records []models.SetRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(records) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty record batch"})
		return
	}
	for _, rec := range records {
		if rec.UserID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId required on every record"})
			return
		}
	}

	assignSessionKeys(records)

	inserted, err := s.db.InsertSetRecords(r.Context(), records)
	if err != nil {
		s.log.Error("insert records", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if templateID := r.URL.Query().Get("templateId"); templateID != "" {
		if err := s.db.TouchTemplateLastPerformed(r.Context(), templateID, records[0].Date); err != nil {
			s.log.Error("stamp template", "template", templateID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"inserted": inserted,
		"records":  records,
	})
}

// assignSessionKeys gives every keyless record in a batch a UUID shared by
// all keyless records with the same date and workout name.
func assignSessionKeys(records []models.SetRecord) {
	assigned := map[string]string{}
	for i := range records {
		if records[i].SessionKey != "" {
			continue
		}
		groupKey := records[i].Date + "|" + records[i].WorkoutName
		key, ok := assigned[groupKey]
		if !ok {
			key = uuid.NewString()
			assigned[groupKey] = key
		}
		records[i].SessionKey = key
	}
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	var rec models.SetRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	rec.ObjectID = chi.URLParam(r, "id")

	if err := s.db.UpdateSetRecord(r.Context(), rec); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteSetRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWeightProgression(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := s.db.QuerySetRecords(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	progressions := analytics.WeightProgression(records)
	if exercise := r.URL.Query().Get("exercise"); exercise != "" {
		filtered := progressions[:0]
		for _, p := range progressions {
			if p.Exercise == exercise {
				filtered = append(filtered, p)
			}
		}
		progressions = filtered
	}
	if progressions == nil {
		progressions = []analytics.ExerciseProgression{}
	}
	writeJSON(w, http.StatusOK, progressions)
}

func (s *Server) handleVolumeByMuscle(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := s.db.QuerySetRecords(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	volumes := analytics.VolumeByMuscle(records)
	if volumes == nil {
		volumes = []analytics.MuscleVolume{}
	}
	writeJSON(w, http.StatusOK, volumes)
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := s.db.QuerySetRecords(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	counts := analytics.FrequencyByDate(records)
	if counts == nil {
		counts = []analytics.DateCount{}
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	exercises, err := s.db.QueryExercises(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var e models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if e.ExerciseName == "" || e.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exerciseName and userId required"})
		return
	}

	id, err := s.db.InsertExercise(r.Context(), e)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	e.ObjectID = id
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	templates, err := s.db.QueryTemplates(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if templates == nil {
		templates = []models.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.Template
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if t.Name == "" || t.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and userId required"})
		return
	}

	id, err := s.db.InsertTemplate(r.Context(), t)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	t.ObjectID = id
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.Template
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	t.ObjectID = chi.URLParam(r, "id")

	if err := s.db.UpdateTemplate(r.Context(), t); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	stats, err := s.db.GetDataStats(r.Context(), user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login       string `json:"login"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Login == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "login required"})
		return
	}

	id, err := s.db.GetOrCreateUser(r.Context(), req.Login, req.DisplayName)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"userId": id})
}

// handleCoachChat answers a user question with their recent training as
// context. Upstream failures degrade to a canned reply instead of an error
// so the chat surface stays usable.
func (s *Server) handleCoachChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string `json:"userId"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.UserID == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId and message required"})
		return
	}

	history, err := s.db.QuerySetRecords(r.Context(), req.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	reply, err := s.coach.Chat(r.Context(), req.Message, history)
	if err != nil {
		s.log.Error("coach chat", "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"reply": coach.FallbackReply})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
