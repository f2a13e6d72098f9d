package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path, and checks the Parse auth headers on every call.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Parse-Application-Id"); got != "test-app" {
			t.Errorf("X-Parse-Application-Id=%q, want test-app", got)
		}
		if got := r.Header.Get("X-Parse-REST-API-Key"); got != "test-key" {
			t.Errorf("X-Parse-REST-API-Key=%q, want test-key", got)
		}
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestFetchSetRecords verifies the client requests the full class with an
// explicit limit and filters rows to the requested user locally.
func TestFetchSetRecords(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/classes/TrackedWorkouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "1000" {
				t.Errorf("limit=%q, want 1000", got)
			}
			writeTestJSON(t, w, map[string]any{
				"results": []models.SetRecord{
					{ObjectID: "a1", UserID: "u1", ExerciseName: "Squat"},
					{ObjectID: "b2", UserID: "u2", ExerciseName: "Bench Press"},
					{ObjectID: "c3", UserID: "u1", ExerciseName: "Deadlift"},
				},
			})
		},
	})
	defer ts.Close()

	client := NewClient(ts.URL, "test-app", "test-key")
	records, err := client.FetchSetRecords(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ObjectID != "a1" || records[1].ObjectID != "c3" {
		t.Errorf("got ids %q, %q, want a1, c3", records[0].ObjectID, records[1].ObjectID)
	}
}

// TestQuerySetRecords verifies the record-source method returns the same
// user-filtered rows as FetchSetRecords, so the MCP binary's parse backend
// mode sees exactly the hosted data.
func TestQuerySetRecords(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/classes/TrackedWorkouts": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]any{
				"results": []models.SetRecord{
					{ObjectID: "a1", UserID: "u1", ExerciseName: "Squat"},
					{ObjectID: "b2", UserID: "u2", ExerciseName: "Bench Press"},
				},
			})
		},
	})
	defer ts.Close()

	client := NewClient(ts.URL, "test-app", "test-key")
	records, err := client.QuerySetRecords(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].ObjectID != "a1" {
		t.Errorf("got id %q, want a1", records[0].ObjectID)
	}
}

// TestCreateSetRecord verifies the POST body round-trips and the assigned
// object id is returned.
func TestCreateSetRecord(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/classes/TrackedWorkouts": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method=%s, want POST", r.Method)
			}
			var rec models.SetRecord
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				t.Fatal(err)
			}
			if rec.ExerciseName != "Squat" {
				t.Errorf("exerciseName=%q, want Squat", rec.ExerciseName)
			}
			w.WriteHeader(http.StatusCreated)
			writeTestJSON(t, w, map[string]string{"objectId": "new-id"})
		},
	})
	defer ts.Close()

	client := NewClient(ts.URL, "test-app", "test-key")
	id, err := client.CreateSetRecord(context.Background(), models.SetRecord{UserID: "u1", ExerciseName: "Squat"})
	if err != nil {
		t.Fatal(err)
	}
	if id != "new-id" {
		t.Errorf("id=%q, want new-id", id)
	}
}

// TestUpdateSetRecord verifies the PUT path includes the object id.
func TestUpdateSetRecord(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/classes/TrackedWorkouts/abc123": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("method=%s, want PUT", r.Method)
			}
			writeTestJSON(t, w, map[string]string{"updatedAt": "2026-01-01T00:00:00Z"})
		},
	})
	defer ts.Close()

	client := NewClient(ts.URL, "test-app", "test-key")
	if err := client.UpdateSetRecord(context.Background(), "abc123", models.SetRecord{}); err != nil {
		t.Fatal(err)
	}
}

// TestFetchTemplates verifies global templates are included alongside the
// user's own and other users' private templates are dropped.
func TestFetchTemplates(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/classes/WorkoutTemplates": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]any{
				"results": []models.Template{
					{ObjectID: "g1", Name: "Push Day", IsGlobal: true},
					{ObjectID: "m1", Name: "My Split", UserID: "u1"},
					{ObjectID: "x1", Name: "Someone Else", UserID: "u2"},
				},
			})
		},
	})
	defer ts.Close()

	client := NewClient(ts.URL, "test-app", "test-key")
	templates, err := client.FetchTemplates(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(templates) != 2 {
		t.Fatalf("got %d templates, want 2", len(templates))
	}
	if templates[0].ObjectID != "g1" || templates[1].ObjectID != "m1" {
		t.Errorf("got ids %q, %q, want g1, m1", templates[0].ObjectID, templates[1].ObjectID)
	}
}

// TestClientServerError verifies non-2xx responses surface as errors with the
// response body included.
func TestClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/classes/TrackedWorkouts": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
		},
	})
	defer ts.Close()

	client := NewClient(ts.URL, "test-app", "test-key")
	_, err := client.FetchSetRecords(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}
