package mcp

import (
	"context"

	"github.com/lynx-zenchar/builtbuff/internal/models"
	"github.com/lynx-zenchar/builtbuff/internal/remote"
	"github.com/lynx-zenchar/builtbuff/internal/storage"
)

// RecordSource abstracts where set records come from. *storage.DB (local
// mode), HTTPClient (a running BuiltBuff server), and remote.Client (the
// hosted Parse-compatible backend) all satisfy this interface; every tool
// fetches the flat record list and runs the analytics in-process.
type RecordSource interface {
	QuerySetRecords(ctx context.Context, userID string) ([]models.SetRecord, error)
}

// Compile-time checks: all three backends satisfy RecordSource.
var (
	_ RecordSource = (*storage.DB)(nil)
	_ RecordSource = (*remote.Client)(nil)
)
