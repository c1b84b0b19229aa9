// Package portfolio persists the tracked ticker list.
package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	apperrors "intel-terminal/internal/errors"
)

// DefaultTickers is the fallback list used when the portfolio file is
// absent or corrupt.
var DefaultTickers = []string{"META", "AMZN", "SOFI", "BMNR"}

// Store is a durable, ordered list of tracked tickers backed by a flat
// JSON document. Insertion order is preserved for display; uniqueness is
// enforced on add. Reads happen at the start of a refresh pass, writes
// only via explicit user add/remove actions.
type Store struct {
	path   string
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewStore creates a store backed by the given file path.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "portfolio").Logger(),
	}
}

// Load returns the persisted ticker list. A missing or corrupt file falls
// back to the hardcoded default list; the corruption is logged, not
// surfaced as a blocking error.
func (s *Store) Load() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Portfolio file unreadable, using defaults")
		}
		return append([]string(nil), DefaultTickers...)
	}

	var tickers []string
	if err := json.Unmarshal(b, &tickers); err != nil {
		err = fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err)
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Portfolio file corrupt, using defaults")
		return append([]string(nil), DefaultTickers...)
	}
	return tickers
}

// Save persists the ticker list durably. The write is atomic: a temp file
// in the same directory is renamed over the target, so a crash mid-write
// never leaves a corrupt file. Saving an unmodified loaded list
// reproduces byte-identical persisted state.
func (s *Store) Save(tickers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(tickers)
}

func (s *Store) save(tickers []string) error {
	if tickers == nil {
		tickers = []string{}
	}

	b, err := json.Marshal(tickers)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".portfolio-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}

// Add appends a ticker (uppercased) if not already tracked and persists
// before returning, so the next pass's read observes it.
func (s *Store) Add(ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickers := s.load()
	for _, t := range tickers {
		if t == ticker {
			return nil
		}
	}
	return s.save(append(tickers, ticker))
}

// Remove drops a ticker and persists. Removing an untracked ticker is a
// no-op.
func (s *Store) Remove(ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	s.mu.Lock()
	defer s.mu.Unlock()

	tickers := s.load()
	kept := tickers[:0]
	removed := false
	for _, t := range tickers {
		if t == ticker {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return nil
	}
	return s.save(kept)
}
