package mcp

import (
	"context"

	"github.com/lynx-zenchar/builtbuff/internal/analytics"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("List past workout sessions, newest first. Each session includes date, workout name, duration, total volume (weight × reps summed over all sets), exercise list, and personal record count."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to 20.")),
)

var toolGetWeightProgression = mcp.NewTool("get_weight_progression",
	mcp.WithDescription("Per-exercise weight over time, each exercise as a date-ordered series of (date, weight) points. Useful for spotting strength trends."),
	mcp.WithString("exercise", mcp.Description("Return only this exercise's series (exact name match)")),
)

var toolGetVolumeByMuscle = mcp.NewTool("get_volume_by_muscle",
	mcp.WithDescription("Total training volume (weight × reps) accumulated per muscle group across the whole history."),
)

var toolGetWorkoutFrequency = mcp.NewTool("get_workout_frequency",
	mcp.WithDescription("Number of logged sets per calendar date, sorted by date. Shows training consistency over time."),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Sessions where at least one personal record was set (a set whose volume beats the exercise's best across all other sessions)."),
)

var toolSummarizeTraining = mcp.NewTool("summarize_training",
	mcp.WithDescription("Compact text summary of the last 20 workouts: muscle groups trained with last-trained dates, and top exercises with session counts and latest weight × reps."),
)

// sessionView is the JSON shape tools return for one derived session.
type sessionView struct {
	Date            string  `json:"date"`
	WorkoutName     string  `json:"workoutName"`
	Duration        string  `json:"duration"`
	TotalVolume     float64 `json:"totalVolume"`
	ExerciseSummary string  `json:"exerciseSummary"`
	PersonalRecords int     `json:"personalRecords"`
	SetCount        int     `json:"setCount"`
}

func sessionViews(sessions []analytics.Session) []sessionView {
	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, sessionView{
			Date:            s.Date(),
			WorkoutName:     s.WorkoutName(),
			Duration:        analytics.SessionDuration(s),
			TotalVolume:     analytics.TotalVolume(s),
			ExerciseSummary: analytics.ExerciseSummary(s),
			PersonalRecords: analytics.PersonalRecordCount(s, sessions),
			SetCount:        len(s.Records),
		})
	}
	return views
}

// --- Tool handlers ---

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	records, err := h.ds.QuerySetRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_workout_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	sessions := analytics.GroupBySession(records)
	analytics.SortSessionsByDateDesc(sessions)
	views := sessionViews(sessions)

	limit := req.GetInt("limit", 20)
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}

	result, err := mcp.NewToolResultJSON(views)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeightProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	records, err := h.ds.QuerySetRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_weight_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	progressions := analytics.WeightProgression(records)
	if exercise := req.GetString("exercise", ""); exercise != "" {
		filtered := progressions[:0]
		for _, p := range progressions {
			if p.Exercise == exercise {
				filtered = append(filtered, p)
			}
		}
		progressions = filtered
	}

	result, err := mcp.NewToolResultJSON(progressions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVolumeByMuscle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	records, err := h.ds.QuerySetRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_volume_by_muscle", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.VolumeByMuscle(records))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutFrequency(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	records, err := h.ds.QuerySetRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_workout_frequency", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.FrequencyByDate(records))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	records, err := h.ds.QuerySetRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	sessions := analytics.GroupBySession(records)
	analytics.SortSessionsByDateDesc(sessions)

	var prs []sessionView
	for _, v := range sessionViews(sessions) {
		if v.PersonalRecords > 0 {
			prs = append(prs, v)
		}
	}
	if prs == nil {
		prs = []sessionView{}
	}

	result, err := mcp.NewToolResultJSON(prs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) summarizeTraining(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	records, err := h.ds.QuerySetRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp summarize_training", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	summary := analytics.Summarize(analytics.RecentRecords(records, analytics.RecentWindow))
	return mcp.NewToolResultText(summary), nil
}
