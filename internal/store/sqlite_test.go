package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "intel-terminal/internal/errors"
	"intel-terminal/internal/models"
)

func newTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	archive, err := NewSQLiteArchive(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

func TestNewSQLiteArchiveUnopenablePath(t *testing.T) {
	// A directory is not a valid database file.
	_, err := NewSQLiteArchive(t.TempDir())
	if !errors.Is(err, apperrors.ErrDatabaseError) {
		t.Errorf("err = %v, want wrapped database sentinel", err)
	}
}

func alert(ticker, actor string, day int) models.AlertRecord {
	return models.AlertRecord{
		Source:     models.SourceWhale,
		Ticker:     ticker,
		ActorName:  actor,
		Action:     "BUY",
		Detail:     "test",
		OccurredOn: time.Date(2026, time.February, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestSavePassAndRecentAlerts(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	records := []models.AlertRecord{
		alert("META", "Pershing", 11),
		alert("AMZN", "Altimeter", 14),
		alert("SOFI", "ARK", 17),
	}
	if err := archive.SavePass(ctx, 1, time.Now(), records); err != nil {
		t.Fatal(err)
	}

	got, err := archive.RecentAlerts(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("alerts = %d, want 3", len(got))
	}
	// Newest occurrence first.
	if got[0].Ticker != "SOFI" || got[2].Ticker != "META" {
		t.Errorf("order = %s..%s, want SOFI..META", got[0].Ticker, got[2].Ticker)
	}
	if got[0].PassGeneration != 1 {
		t.Errorf("generation = %d, want 1", got[0].PassGeneration)
	}
	if !got[0].OccurredOn.Equal(time.Date(2026, time.February, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("occurred = %s", got[0].OccurredOn)
	}
}

func TestSavePassIdempotentAcrossPasses(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	records := []models.AlertRecord{alert("META", "Pershing", 11)}
	if err := archive.SavePass(ctx, 1, time.Now(), records); err != nil {
		t.Fatal(err)
	}
	if err := archive.SavePass(ctx, 2, time.Now(), records); err != nil {
		t.Fatal(err)
	}

	got, err := archive.RecentAlerts(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("alerts = %d, want re-observed alert stored once", len(got))
	}
	// First sighting wins.
	if got[0].PassGeneration != 1 {
		t.Errorf("generation = %d, want 1", got[0].PassGeneration)
	}
}

func TestSavePassEmptyIsNoop(t *testing.T) {
	archive := newTestArchive(t)
	if err := archive.SavePass(context.Background(), 1, time.Now(), nil); err != nil {
		t.Fatal(err)
	}
}

func TestRecentAlertsLimit(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	records := []models.AlertRecord{
		alert("META", "A", 10),
		alert("META", "B", 11),
		alert("META", "C", 12),
	}
	if err := archive.SavePass(ctx, 1, time.Now(), records); err != nil {
		t.Fatal(err)
	}

	got, err := archive.RecentAlerts(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("alerts = %d, want limit 2", len(got))
	}
}

func TestPrune(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	records := []models.AlertRecord{
		alert("META", "Old", 1),
		alert("META", "New", 20),
	}
	if err := archive.SavePass(ctx, 1, time.Now(), records); err != nil {
		t.Fatal(err)
	}

	pruned, err := archive.Prune(ctx, time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}

	got, err := archive.RecentAlerts(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ActorName != "New" {
		t.Errorf("remaining = %+v, want only the new alert", got)
	}
}

func TestNopArchive(t *testing.T) {
	var archive AlertArchive = NopArchive{}
	ctx := context.Background()

	if err := archive.SavePass(ctx, 1, time.Now(), []models.AlertRecord{alert("META", "A", 1)}); err != nil {
		t.Fatal(err)
	}
	got, err := archive.RecentAlerts(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("nop archive returned alerts: %v", got)
	}
}
