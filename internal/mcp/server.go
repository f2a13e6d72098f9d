package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return "local"
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds RecordSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("BuiltBuff", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("BuiltBuff workout tracking server. Query workout history, weight progression, training volume, frequency, and personal records. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetWeightProgression, Handler: h.getWeightProgression},
		server.ServerTool{Tool: toolGetVolumeByMuscle, Handler: h.getVolumeByMuscle},
		server.ServerTool{Tool: toolGetWorkoutFrequency, Handler: h.getWorkoutFrequency},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolSummarizeTraining, Handler: h.summarizeTraining},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentTraining, Handler: h.recentTraining},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  RecordSource
	log *slog.Logger
}

var resRecentTraining = mcp.NewResource(
	"builtbuff://recent_training",
	"Recent Training",
	mcp.WithResourceDescription("Text summary of the last 20 workouts: muscle groups trained and top exercises with latest weight and reps"),
	mcp.WithMIMEType("text/plain"),
)
