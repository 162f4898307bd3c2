// Package stats persists monthly usage counters for the readiness
// service as a small JSON file.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats aggregates analysis activity for one calendar month.
type MonthlyStats struct {
	AnalysesRun int       `json:"analyses_run"`
	CacheHits   int       `json:"cache_hits"`
	CacheMisses int       `json:"cache_misses"`
	ReadyCount  int       `json:"ready_count"`
	ScoreSum    int       `json:"score_sum"`
	LastUpdated time.Time `json:"last_updated"`
}

// AverageScore returns the mean readiness score of the month, or 0
// when nothing ran.
func (m MonthlyStats) AverageScore() float64 {
	if m.AnalysesRun == 0 {
		return 0
	}
	return float64(m.ScoreSum) / float64(m.AnalysesRun)
}

// Storage handles persistent storage of monthly statistics.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

// NewStorage creates a statistics store under dataDir, loading any
// previously persisted counters.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()
	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return json.Unmarshal(data, &s.stats)
}

// save writes statistics to a temporary file and renames it into
// place.
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			return
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

// requestWrite signals that a write to disk is needed. A full buffer
// means a write is already pending.
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
	}
}

func (s *Storage) current() *MonthlyStats {
	month := currentMonth()
	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}
	return stats
}

func (s *Storage) touch(update func(*MonthlyStats)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.current()
	update(stats)
	stats.LastUpdated = time.Now()

	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// RecordCacheHit counts a report served from cache.
func (s *Storage) RecordCacheHit() {
	s.touch(func(m *MonthlyStats) { m.CacheHits++ })
}

// RecordCacheMiss counts a cache miss.
func (s *Storage) RecordCacheMiss() {
	s.touch(func(m *MonthlyStats) { m.CacheMisses++ })
}

// RecordAnalysis counts one completed analysis run.
func (s *Storage) RecordAnalysis(score int, ready bool) {
	s.touch(func(m *MonthlyStats) {
		m.AnalysesRun++
		m.ScoreSum += score
		if ready {
			m.ReadyCount++
		}
	})
}

// GetCurrentStats returns statistics for the current month.
func (s *Storage) GetCurrentStats() MonthlyStats {
	month := currentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if stats, exists := s.stats[month]; exists {
		return *stats
	}
	return MonthlyStats{}
}

// GetMonthlyStats returns statistics for a specific "YYYY-MM" month.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns every month with statistics, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Cleanup drops everything but the current and previous month.
func (s *Storage) Cleanup() {
	now := time.Now()
	keep := map[string]bool{
		now.Format("2006-01"):                  true,
		now.AddDate(0, -1, 0).Format("2006-01"): true,
	}

	s.mutex.Lock()
	for key := range s.stats {
		if !keep[key] {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
}

// Shutdown stops the background writer and performs a final save.
func (s *Storage) Shutdown() error {
	s.closeOnce.Do(func() { close(s.done) })
	return s.save()
}
