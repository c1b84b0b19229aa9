// Package store provides the local alert archive.
package store

import (
	"context"
	"time"

	"intel-terminal/internal/models"
)

// ArchivedAlert is one persisted wire entry with its pass metadata.
type ArchivedAlert struct {
	models.AlertRecord
	PassGeneration uint64
	PassAt         time.Time
}

// AlertArchive persists each aggregation pass's ranked wire so alert
// history survives restarts. Archiving is best-effort: the terminal runs
// fine with the no-op archive when the database cannot be opened.
type AlertArchive interface {
	SavePass(ctx context.Context, generation uint64, at time.Time, records []models.AlertRecord) error
	RecentAlerts(ctx context.Context, limit int) ([]ArchivedAlert, error)
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
	Close() error
}

// NopArchive discards everything. Used when archiving is disabled or the
// backing database failed to open.
type NopArchive struct{}

func (NopArchive) SavePass(context.Context, uint64, time.Time, []models.AlertRecord) error {
	return nil
}

func (NopArchive) RecentAlerts(context.Context, int) ([]ArchivedAlert, error) {
	return []ArchivedAlert{}, nil
}

func (NopArchive) Prune(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (NopArchive) Close() error { return nil }
