package health

import (
	"sync"
	"time"
)

// MemStore is a Store kept in memory. History is lost on restart.
type MemStore struct {
	mu      sync.Mutex
	minutes map[int64]uint32
}

func NewMemStore() *MemStore {
	return &MemStore{minutes: make(map[int64]uint32)}
}

// minuteOf returns the Unix minute containing t.
func minuteOf(t time.Time) int64 {
	return t.Unix() / 60
}

func (s *MemStore) Add(t time.Time, n uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minutes[minuteOf(t)] += n
	return nil
}

func (s *MemStore) Sum(start, end time.Time) (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total uint64
	found := false
	for m := minuteOf(start); m*60 < end.Unix(); m++ {
		n, ok := s.minutes[m]
		if !ok {
			continue
		}
		found = true
		total += uint64(n)
	}
	return total, found, nil
}
