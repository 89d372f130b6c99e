// Package health is the activity service: it records step samples from
// a sensor and answers the sum and average queries watch faces make.
package health

import (
	"fmt"
	"log"
	"sync"
	"time"
)

type Metric int

const (
	StepCount Metric = iota
)

func (m Metric) String() string {
	switch m {
	case StepCount:
		return "steps"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// TimeScope selects which past days an average is taken over.
type TimeScope int

const (
	// ScopeOnce does not average; the sum of the range is returned.
	ScopeOnce TimeScope = iota
	// ScopeWeekly averages over the same weekday of past weeks.
	ScopeWeekly
	// ScopeDailyWeekdayOrWeekend averages over past weekdays or
	// weekend days, matching the range.
	ScopeDailyWeekdayOrWeekend
	// ScopeDaily averages over all past days.
	ScopeDaily
)

// historyDays is how far back averages look.
const historyDays = 30

// Store keeps per-minute step counts. Implementations must be safe
// for concurrent use.
type Store interface {
	// Add adds n steps to the minute containing t.
	Add(t time.Time, n uint32) error
	// Sum returns the steps recorded in [start, end) and whether any
	// sample fell in the range.
	Sum(start, end time.Time) (total uint64, ok bool, err error)
}

// Service answers health queries from a Store. Query failures are
// logged and reported as zero.
type Service struct {
	store Store
	now   func() time.Time

	mu      sync.Mutex
	lastErr error
}

func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Record adds n steps taken at t.
func (s *Service) Record(t time.Time, n uint32) error {
	if n == 0 {
		return nil
	}
	if err := s.store.Add(t, n); err != nil {
		return fmt.Errorf("health: record: %w", err)
	}
	return nil
}

// SumToday returns the metric accumulated since the start of today.
func (s *Service) SumToday(m Metric) int {
	now := s.now()
	return s.Sum(m, StartOfDay(now), now)
}

// Sum returns the metric accumulated in [start, end).
func (s *Service) Sum(m Metric, start, end time.Time) int {
	if m != StepCount {
		return 0
	}
	total, _, err := s.store.Sum(start, end)
	if err != nil {
		s.fail(err)
		return 0
	}
	return clampInt(total)
}

// SumAveraged returns the average of the metric over the same time of
// day window [start, end) on past days selected by scope. Days without
// any samples are left out of the average.
func (s *Service) SumAveraged(m Metric, start, end time.Time, scope TimeScope) int {
	if m != StepCount {
		return 0
	}
	if scope == ScopeOnce {
		return s.Sum(m, start, end)
	}
	var total uint64
	days := 0
	for d := 1; d <= historyDays; d++ {
		ps, pe := start.AddDate(0, 0, -d), end.AddDate(0, 0, -d)
		if !scopeIncludes(scope, start, ps) {
			continue
		}
		sum, ok, err := s.store.Sum(ps, pe)
		if err != nil {
			s.fail(err)
			return 0
		}
		if !ok {
			continue
		}
		total += sum
		days++
	}
	if days == 0 {
		return 0
	}
	return clampInt(total / uint64(days))
}

func (s *Service) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Only log changes, queries repeat every minute.
	if s.lastErr == nil || s.lastErr.Error() != err.Error() {
		log.Printf("health: %v", err)
	}
	s.lastErr = err
}

func scopeIncludes(scope TimeScope, day, past time.Time) bool {
	switch scope {
	case ScopeWeekly:
		return day.Weekday() == past.Weekday()
	case ScopeDailyWeekdayOrWeekend:
		return isWeekend(day) == isWeekend(past)
	default:
		return true
	}
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func clampInt(v uint64) int {
	const maxInt = int(^uint(0) >> 1)
	if v > uint64(maxInt) {
		return maxInt
	}
	return int(v)
}
