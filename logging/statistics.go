package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// EnvDevMode controls statistics visibility and log verbosity.
const EnvDevMode = "DEV_MODE"

// Statistics collects request-level counters for the readiness API.
type Statistics struct {
	UniqueVisitors   map[string]time.Time `json:"uniqueVisitors"` // IP -> last visit
	AnalysisRequests int                  `json:"analysisRequests"`
	ErrorCount       int                  `json:"errorCount"`
	PopularKeywords  map[string]int       `json:"popularKeywords"` // target keyword -> times analyzed
	AverageDuration  float64              `json:"averageDuration"` // milliseconds
	TotalDuration    float64              `json:"-"`
	RequestCount     int                  `json:"-"`
	LastPersisted    time.Time            `json:"lastPersisted"`

	mutex sync.RWMutex
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics singleton.
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors:  make(map[string]time.Time),
			PopularKeywords: make(map[string]int),
			LastPersisted:   time.Now(),
		}
		if err := stats.Load(); err != nil {
			fmt.Printf("Could not load existing statistics: %v\n", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor.
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UniqueVisitors[ip] = time.Now()
}

// TrackAnalysis records one analysis request along with the keywords
// it targeted.
func (s *Statistics) TrackAnalysis(keywords []string, duration float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AnalysisRequests++
	for _, kw := range keywords {
		if kw != "" {
			s.PopularKeywords[kw]++
		}
	}
	if hasError {
		s.ErrorCount++
	}

	s.TotalDuration += duration
	s.RequestCount++
	s.AverageDuration = s.TotalDuration / float64(s.RequestCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the
// last 24 hours.
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}
	return count
}

// GetPopularKeywords returns up to n analyzed keywords with their
// counts.
func (s *Statistics) GetPopularKeywords(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make(map[string]int, n)
	count := 0
	for kw, freq := range s.PopularKeywords {
		if count >= n {
			break
		}
		result[kw] = freq
		count++
	}
	return result
}

// RequestsTracked returns the total number of analysis requests seen.
func (s *Statistics) RequestsTracked() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.AnalysisRequests
}

// GetErrorRate returns the error rate as a percentage.
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.AnalysisRequests == 0 {
		return 0
	}
	return float64(s.ErrorCount) / float64(s.AnalysisRequests) * 100
}

// Save persists the statistics to a file.
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()
	file, err := os.Create("statistics.json")
	if err != nil {
		return fmt.Errorf("could not create statistics file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %w", err)
	}
	return nil
}

// Load reads the statistics from a file. A missing file is not an
// error.
func (s *Statistics) Load() error {
	file, err := os.Open("statistics.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not open statistics file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %w", err)
	}
	return nil
}

// GetStatistics returns the current statistics. Keyword-level detail
// is only exposed in development mode.
func (s *Statistics) GetStatistics() map[string]interface{} {
	visitors := s.GetUniqueVisitorsCount()
	errorRate := s.GetErrorRate()

	s.mutex.RLock()
	result := map[string]interface{}{
		"uniqueVisitors24h": visitors,
		"totalRequests":     s.AnalysisRequests,
		"errorRate":         errorRate,
		"averageDuration":   s.AverageDuration,
	}
	s.mutex.RUnlock()

	if os.Getenv(EnvDevMode) == "true" {
		result["popularKeywords"] = s.GetPopularKeywords(5)
	}
	return result
}
