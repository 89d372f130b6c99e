package health

import (
	"errors"
	"testing"
	"time"
)

func TestSumToday(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	s := NewService(NewMemStore(), func() time.Time { return now })
	record := func(at time.Time, n uint32) {
		t.Helper()
		if err := s.Record(at, n); err != nil {
			t.Fatal(err)
		}
	}
	record(now.Add(-20*time.Hour), 400) // Yesterday.
	record(now.Add(-6*time.Hour), 1000)
	record(now.Add(-time.Minute), 532)
	if got := s.SumToday(StepCount); got != 1532 {
		t.Errorf("SumToday = %d, want 1532", got)
	}
	if got := s.SumToday(Metric(42)); got != 0 {
		t.Errorf("SumToday(unknown) = %d, want 0", got)
	}
}

func TestSumAveraged(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC) // Tuesday.
	store := NewMemStore()
	s := NewService(store, func() time.Time { return now })
	start := StartOfDay(now)
	// Same window on three past days, plus steps after the window
	// that must not count.
	for d, n := range map[int]uint32{1: 900, 2: 1100, 7: 940} {
		day := start.AddDate(0, 0, -d)
		store.Add(day.Add(9*time.Hour), n)
		store.Add(day.Add(20*time.Hour), 5000)
	}
	tests := []struct {
		scope TimeScope
		want  int
	}{
		{ScopeDaily, (900 + 1100 + 940) / 3},
		{ScopeWeekly, 940},
		// 2024-03-03 is a Sunday.
		{ScopeDailyWeekdayOrWeekend, (900 + 940) / 2},
		{ScopeOnce, 0},
	}
	for _, test := range tests {
		if got := s.SumAveraged(StepCount, start, now, test.scope); got != test.want {
			t.Errorf("SumAveraged(scope %d) = %d, want %d", test.scope, got, test.want)
		}
	}
}

func TestNoHistory(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	s := NewService(NewMemStore(), func() time.Time { return now })
	if got := s.SumAveraged(StepCount, StartOfDay(now), now, ScopeDaily); got != 0 {
		t.Errorf("SumAveraged without history = %d, want 0", got)
	}
}

type brokenStore struct{}

var errBroken = errors.New("disk on fire")

func (brokenStore) Add(time.Time, uint32) error {
	return errBroken
}

func (brokenStore) Sum(time.Time, time.Time) (uint64, bool, error) {
	return 0, false, errBroken
}

func TestUnavailableReadsZero(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	s := NewService(brokenStore{}, func() time.Time { return now })
	if err := s.Record(now, 10); !errors.Is(err, errBroken) {
		t.Errorf("Record = %v, want %v", err, errBroken)
	}
	if got := s.SumToday(StepCount); got != 0 {
		t.Errorf("SumToday = %d, want 0", got)
	}
	if got := s.SumAveraged(StepCount, StartOfDay(now), now, ScopeDaily); got != 0 {
		t.Errorf("SumAveraged = %d, want 0", got)
	}
}
