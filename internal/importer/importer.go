package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/lynx-zenchar/builtbuff/internal/models"
	"github.com/lynx-zenchar/builtbuff/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	SetsInserted   int64
	SetsDuplicated int64
	SessionsKeyed  int
}

// Importer reads CSV export files from a directory and inserts set records
// into the database.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	userID string
	dryRun bool
	stats  Stats
}

// New creates a new Importer. All imported records are owned by userID.
func New(db *storage.DB, state *StateDB, userID string, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, userID: userID, log: log, dryRun: dryRun}
}

// Import processes all .csv files under the given directory. Files already
// recorded in the state database with an unchanged size and hash are skipped.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return &imp.stats, err
	}

	for _, f := range files {
		if err := imp.importFile(ctx, f); err != nil {
			imp.log.Warn("import failed", "file", f, "error", err)
			imp.stats.FilesErrored++
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	relPath := filepath.Base(path)
	done, err := imp.state.IsImported(relPath, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("checking state: %w", err)
	}
	if done {
		imp.stats.FilesSkipped++
		imp.log.Info("skipping already-imported file", "file", relPath)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	if len(records) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	for i := range records {
		records[i].UserID = imp.userID
	}
	imp.stats.SessionsKeyed += keyWorkouts(records)

	imp.stats.FilesProcessed++
	if imp.dryRun {
		imp.stats.SetsInserted += int64(len(records))
		return nil
	}

	inserted, err := imp.batchInsert(ctx, records)
	if err != nil {
		return fmt.Errorf("inserting: %w", err)
	}
	imp.stats.SetsInserted += inserted
	imp.stats.SetsDuplicated += int64(len(records)) - inserted

	if err := imp.state.MarkImported(relPath, info.Size(), hash); err != nil {
		return fmt.Errorf("marking state: %w", err)
	}
	return nil
}

// keyWorkouts assigns one fresh session key per (date, workout name) pair
// across the file, so all sets of one workout group into one session later.
// Returns the number of distinct workouts keyed.
func keyWorkouts(records []models.SetRecord) int {
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
	return len(assigned)
}

// batchInsert inserts set records in batches to stay within PostgreSQL
// parameter limits. 15 params per row, max 65535 params → ~4369 rows. Use 4000.
func (imp *Importer) batchInsert(ctx context.Context, records []models.SetRecord) (int64, error) {
	const batchSize = 4000
	var totalInserted int64

	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		inserted, err := imp.db.InsertSetRecords(ctx, records[i:end])
		if err != nil {
			return totalInserted, err
		}
		totalInserted += inserted
	}
	return totalInserted, nil
}
