package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "intel-terminal/internal/errors"
	"intel-terminal/internal/models"
)

// SQLiteArchive implements AlertArchive using SQLite.
type SQLiteArchive struct {
	db *sql.DB
}

// NewSQLiteArchive creates a new SQLite-backed alert archive.
func NewSQLiteArchive(dbPath string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", apperrors.ErrDatabaseError, err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	archive := &SQLiteArchive{db: db}

	if err := archive.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", apperrors.ErrDatabaseError, err)
	}

	return archive, nil
}

func (s *SQLiteArchive) initSchema() error {
	schema := `
	-- Wire entries, one row per alert per first-seen pass
	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pass_generation INTEGER NOT NULL,
		pass_at DATETIME NOT NULL,
		source TEXT NOT NULL,
		ticker TEXT NOT NULL,
		actor TEXT NOT NULL,
		action TEXT NOT NULL,
		detail TEXT,
		occurred_on DATE NOT NULL,
		reference_link TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source, ticker, actor, action, occurred_on)
	);

	CREATE INDEX IF NOT EXISTS idx_alerts_occurred ON alerts(occurred_on DESC);
	CREATE INDEX IF NOT EXISTS idx_alerts_ticker ON alerts(ticker);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SavePass persists one pass's wire. Re-observed alerts are ignored, so
// repeated passes over a stable wire stay idempotent.
func (s *SQLiteArchive) SavePass(ctx context.Context, generation uint64, at time.Time, records []models.AlertRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO alerts
			(pass_generation, pass_at, source, ticker, actor, action, detail, occurred_on, reference_link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			generation,
			at.UTC(),
			string(rec.Source),
			rec.Ticker,
			rec.ActorName,
			rec.Action,
			rec.Detail,
			rec.OccurredOn.Format("2006-01-02"),
			rec.ReferenceLink,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentAlerts returns the most recent archived alerts by occurrence date.
func (s *SQLiteArchive) RecentAlerts(ctx context.Context, limit int) ([]ArchivedAlert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pass_generation, pass_at, source, ticker, actor, action, detail, occurred_on, reference_link
		FROM alerts
		ORDER BY occurred_on DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := []ArchivedAlert{}
	for rows.Next() {
		var a ArchivedAlert
		var source, occurredOn string
		if err := rows.Scan(&a.PassGeneration, &a.PassAt, &source, &a.Ticker, &a.ActorName, &a.Action, &a.Detail, &occurredOn, &a.ReferenceLink); err != nil {
			return nil, err
		}
		a.Source = models.SourceKind(source)
		if d, err := time.Parse("2006-01-02", occurredOn); err == nil {
			a.OccurredOn = d
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// Prune deletes alerts that occurred before the cutoff.
func (s *SQLiteArchive) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM alerts WHERE occurred_on < ?`, olderThan.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the backing database.
func (s *SQLiteArchive) Close() error {
	return s.db.Close()
}
