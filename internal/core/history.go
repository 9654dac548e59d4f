package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	historyWriteTimeout = 5 * time.Second
)

// History returns the latest import runs of a category, newest first.
// limit is clamped to 1..100; zero selects the default of 20.
func (s *Service) History(ctx context.Context, category Category, limit int) ([]ImportRun, error) {
	if _, err := Lookup(category); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	return s.store.ListImportRuns(ctx, category, limit)
}

// recordRun stores the outcome of an import. It runs after the import
// context may have expired, so it uses its own deadline. Failures are logged
// and never change the import result.
func (s *Service) recordRun(ctx context.Context, log *slog.Logger, id uuid.UUID, res *ImportResult, importErr error) {
	caller := CallerFromContext(ctx)

	run := ImportRun{
		ID:         id,
		Category:   res.Category,
		Submitted:  res.Submitted,
		Imported:   res.Imported,
		Status:     RunSucceeded,
		IPAddress:  caller.IPAddress,
		UserAgent:  caller.UserAgent,
		DurationMs: res.Duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if importErr != nil {
		run.Status = RunFailed
		run.Error = FormatUserError(importErr)
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()

	if err := s.store.RecordImportRun(writeCtx, run); err != nil {
		log.Warn("failed to record import run", "error", err)
	}
}
