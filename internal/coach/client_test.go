package coach

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lynx-zenchar/builtbuff/internal/config"
	"github.com/lynx-zenchar/builtbuff/internal/models"
)

func testConfig(baseURL string) config.CoachConfig {
	return config.CoachConfig{
		BaseURL:   baseURL,
		APIKey:    "sk-test",
		Model:     "test-model",
		MaxTokens: 500,
		Temp:      0.7,
	}
}

// TestChatIncludesHistoryContext verifies the system message carries the
// workout summary and the model reply is returned.
func TestChatIncludesHistoryContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path=%s, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization=%q, want Bearer sk-test", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Model != "test-model" {
			t.Errorf("model=%q, want test-model", req.Model)
		}
		if req.MaxTokens != 500 {
			t.Errorf("max_tokens=%d, want 500", req.MaxTokens)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("got %d messages, want 2", len(req.Messages))
		}
		if req.Messages[0].Role != "system" || !strings.Contains(req.Messages[0].Content, "Bench Press") {
			t.Errorf("system message missing workout context: %q", req.Messages[0].Content)
		}
		if req.Messages[1].Role != "user" || req.Messages[1].Content != "how is my bench going?" {
			t.Errorf("unexpected user message: %+v", req.Messages[1])
		}

		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "Looking strong."}}},
		})
	}))
	defer ts.Close()

	w := 80.0
	reps := 5
	history := []models.SetRecord{
		{Date: "2026-01-05", ExerciseName: "Bench Press", TargetMuscles: "Chest", Weight: &w, Reps: &reps},
	}

	client := NewClient(testConfig(ts.URL))
	reply, err := client.Chat(context.Background(), "how is my bench going?", history)
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Looking strong." {
		t.Errorf("reply=%q, want 'Looking strong.'", reply)
	}
}

// TestChatEmptyHistory verifies the placeholder summary is sent when the user
// has no logged workouts.
func TestChatEmptyHistory(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(req.Messages[0].Content, "No recent workout history available.") {
			t.Errorf("system message missing empty-history placeholder: %q", req.Messages[0].Content)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "Start by logging a workout."}}},
		})
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	reply, err := client.Chat(context.Background(), "any advice?", nil)
	if err != nil {
		t.Fatal(err)
	}
	if reply == "" {
		t.Error("expected non-empty reply")
	}
}

// TestChatUpstreamError verifies a non-200 response surfaces as an error so
// callers can substitute FallbackReply.
func TestChatUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.Chat(context.Background(), "hello", nil)
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
}

// TestChatEmptyChoices verifies a well-formed response with no choices is an
// error rather than an empty reply.
func TestChatEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.Chat(context.Background(), "hello", nil)
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}
