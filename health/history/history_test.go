package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health", "steps.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, sample := range []struct {
		at time.Time
		n  uint32
	}{
		{day.Add(8 * time.Hour), 500},
		{day.Add(8*time.Hour + 20*time.Second), 32},
		{day.Add(12 * time.Hour), 1000},
		{day.Add(-time.Hour), 77},
	} {
		if err := s.Add(sample.at, sample.n); err != nil {
			t.Fatal(err)
		}
	}
	total, ok, err := s.Sum(day, day.Add(14*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if !ok || total != 1532 {
		t.Errorf("Sum = %d, %v, want 1532, true", total, ok)
	}
	total, ok, err = s.Sum(day.Add(13*time.Hour), day.Add(14*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if ok || total != 0 {
		t.Errorf("empty Sum = %d, %v, want 0, false", total, ok)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Samples survive reopening.
	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if total, _, _ := s.Sum(day, day.Add(24*time.Hour)); total != 1532 {
		t.Errorf("reopened Sum = %d, want 1532", total)
	}
	n, err := s.Prune(day.Add(Retention))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Prune removed %d rows, want 1", n)
	}
}
