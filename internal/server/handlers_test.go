package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// TestAssignSessionKeysSharedPerWorkout verifies keyless sets from the same
// date and workout name get one shared key, and distinct workouts get
// distinct keys.
func TestAssignSessionKeysSharedPerWorkout(t *testing.T) {
	records := []models.SetRecord{
		{Date: "2026-01-05", WorkoutName: "Push Day", ExerciseName: "Bench Press"},
		{Date: "2026-01-05", WorkoutName: "Push Day", ExerciseName: "Overhead Press"},
		{Date: "2026-01-05", WorkoutName: "Pull Day", ExerciseName: "Deadlift"},
	}

	assignSessionKeys(records)

	if records[0].SessionKey == "" {
		t.Fatal("expected a session key to be assigned")
	}
	if records[0].SessionKey != records[1].SessionKey {
		t.Errorf("same workout got different keys: %q vs %q",
			records[0].SessionKey, records[1].SessionKey)
	}
	if records[0].SessionKey == records[2].SessionKey {
		t.Error("different workouts share a session key")
	}
}

// TestAssignSessionKeysPreservesExisting verifies records that already carry
// a session key are left untouched.
func TestAssignSessionKeysPreservesExisting(t *testing.T) {
	records := []models.SetRecord{
		{Date: "2026-01-05", WorkoutName: "Push Day", SessionKey: "client-key"},
		{Date: "2026-01-05", WorkoutName: "Push Day"},
	}

	assignSessionKeys(records)

	if records[0].SessionKey != "client-key" {
		t.Errorf("existing key overwritten: %q", records[0].SessionKey)
	}
	if records[1].SessionKey == "client-key" {
		t.Error("keyless record adopted the client's explicit key")
	}
	if records[1].SessionKey == "" {
		t.Error("keyless record was not assigned a key")
	}
}

// TestUserIDRequired verifies read handlers reject requests without a user
// parameter before touching storage.
func TestUserIDRequired(t *testing.T) {
	s := &Server{}
	handlers := map[string]http.HandlerFunc{
		"/api/v1/history":            s.handleHistory,
		"/api/v1/records":            s.handleListRecords,
		"/api/v1/progress/weight":    s.handleWeightProgression,
		"/api/v1/progress/volume":    s.handleVolumeByMuscle,
		"/api/v1/progress/frequency": s.handleFrequency,
		"/api/v1/exercises":          s.handleListExercises,
		"/api/v1/templates":          s.handleListTemplates,
		"/api/v1/stats":              s.handleStats,
	}

	for path, h := range handlers {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s without user param: status = %d, want 400", path, rec.Code)
		}
	}
}

// TestCreateRecordsRejectsEmptyBatch verifies an empty array is a 400, not
// a silent no-op.
func TestCreateRecordsRejectsEmptyBatch(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", strings.NewReader("[]"))
	rec := httptest.NewRecorder()
	s.handleCreateRecords(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
