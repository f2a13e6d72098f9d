package mcp

import (
	"context"

	"github.com/lynx-zenchar/builtbuff/internal/analytics"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentTraining(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	records, err := h.ds.QuerySetRecords(ctx, uid)
	if err != nil {
		return nil, err
	}

	summary := analytics.Summarize(analytics.RecentRecords(records, analytics.RecentWindow))

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     summary,
		},
	}, nil
}
