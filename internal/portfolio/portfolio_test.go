package portfolio

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "portfolio.json"), zerolog.Nop())
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	s := newTestStore(t)

	got := s.Load()
	if !reflect.DeepEqual(got, DefaultTickers) {
		t.Errorf("Load() = %v, want defaults %v", got, DefaultTickers)
	}
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path, zerolog.Nop())

	got := s.Load()
	if !reflect.DeepEqual(got, DefaultTickers) {
		t.Errorf("Load() = %v, want defaults %v", got, DefaultTickers)
	}
}

func TestLoadDefaultsAreACopy(t *testing.T) {
	s := newTestStore(t)

	first := s.Load()
	first[0] = "MUTATED"

	if second := s.Load(); second[0] != DefaultTickers[0] {
		t.Error("mutating a loaded default list leaked into later loads")
	}
}

func TestSaveLoadRoundTripBytes(t *testing.T) {
	s := newTestStore(t)
	tickers := []string{"META", "AMZN", "SOFI"}

	if err := s.Save(tickers); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Save(s.Load()); err != nil {
		t.Fatal(err)
	}
	after, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(before, after) {
		t.Errorf("save(load()) changed file bytes: %q -> %q", before, after)
	}
}

func TestSaveNilWritesEmptyList(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(nil); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[]" {
		t.Errorf("file = %q, want []", b)
	}

	if got := s.Load(); len(got) != 0 {
		t.Errorf("Load() after empty save = %v, want empty", got)
	}
}

func TestAddPersistsAndDeduplicates(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save([]string{"META"}); err != nil {
		t.Fatal(err)
	}

	if err := s.Add("nvda"); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("NVDA"); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("  "); err != nil {
		t.Fatal(err)
	}

	got := s.Load()
	want := []string{"META", "NVDA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save([]string{"META", "AMZN", "SOFI"}); err != nil {
		t.Fatal(err)
	}

	if err := s.Remove("amzn"); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("NVDA"); err != nil {
		t.Fatal(err)
	}

	got := s.Load()
	want := []string{"META", "SOFI"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestAddSeedsFromDefaultsWhenFileMissing(t *testing.T) {
	s := newTestStore(t)

	if err := s.Add("NVDA"); err != nil {
		t.Fatal(err)
	}

	got := s.Load()
	want := append(append([]string(nil), DefaultTickers...), "NVDA")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want defaults + NVDA = %v", got, want)
	}
}
