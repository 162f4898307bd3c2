// Package service wraps the pure analyzer core with the caller-side
// concerns the core deliberately avoids: report caching, statistics
// and lifecycle.
package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/content-readiness/backend/analyzer"
	"github.com/content-readiness/backend/stats"
)

type cacheEntry struct {
	report    analyzer.ReadinessReport
	timestamp time.Time
}

// CacheStats describes the state of the report cache.
type CacheStats struct {
	Entries  int           `json:"entries"`
	Hits     int           `json:"hits"`
	Misses   int           `json:"misses"`
	CacheTTL time.Duration `json:"cacheTtl"`
}

// Service runs readiness analyses with a bounded TTL cache keyed by
// the record contents, and records per-month usage statistics.
type Service struct {
	checker *analyzer.Checker

	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration

	stats *stats.Storage
	stop  chan struct{}
	once  sync.Once
}

// New builds the service around a validated analyzer configuration.
// Statistics are persisted under dataDir.
func New(cfg analyzer.Config, dataDir string) (*Service, error) {
	checker, err := analyzer.NewChecker(cfg)
	if err != nil {
		return nil, err
	}
	statsStorage, err := stats.NewStorage(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats storage: %w", err)
	}

	s := &Service{
		checker:         checker,
		cache:           make(map[string]cacheEntry),
		cacheTTL:        10 * time.Minute,
		maxCacheSize:    1000,
		cleanupInterval: 5 * time.Minute,
		lastCleanup:     time.Now(),
		stats:           statsStorage,
		stop:            make(chan struct{}),
	}
	go s.periodicCleanup()
	return s, nil
}

// Checker exposes the underlying analyzer, mainly so callers can wire
// the duplicate-title collaborator.
func (s *Service) Checker() *analyzer.Checker {
	return s.checker
}

// SetDuplicateTitleFunc forwards to the underlying checker.
func (s *Service) SetDuplicateTitleFunc(fn analyzer.DuplicateTitleFunc) {
	s.checker.SetDuplicateTitleFunc(fn)
}

// SetCacheTTL sets how long a cached report stays valid.
func (s *Service) SetCacheTTL(ttl time.Duration) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	s.cacheTTL = ttl
}

// ClearCache drops every cached report.
func (s *Service) ClearCache() {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	s.cache = make(map[string]cacheEntry)
}

// cacheKey hashes the analysis-relevant record fields. Two records
// with identical content share one cache slot.
func cacheKey(record analyzer.ContentRecord) string {
	payload, err := json.Marshal(record)
	if err != nil {
		payload = []byte(record.Title + "\x00" + record.Body)
	}
	hash := md5.Sum(payload)
	return hex.EncodeToString(hash[:])
}

// IsCached reports whether a fresh report exists for the record.
func (s *Service) IsCached(record analyzer.ContentRecord) bool {
	key := cacheKey(record)
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()
	entry, found := s.cache[key]
	return found && time.Since(entry.timestamp) < s.cacheTTL
}

// Analyze returns the readiness report for the record, from cache when
// a fresh one exists.
func (s *Service) Analyze(ctx context.Context, record analyzer.ContentRecord) analyzer.ReadinessReport {
	if time.Since(s.lastCleanup) > s.cleanupInterval {
		go s.cleanup()
	}

	key := cacheKey(record)
	s.cacheMutex.RLock()
	if entry, found := s.cache[key]; found && time.Since(entry.timestamp) < s.cacheTTL {
		s.cacheMutex.RUnlock()
		s.stats.RecordCacheHit()
		return entry.report
	}
	s.cacheMutex.RUnlock()
	s.stats.RecordCacheMiss()

	report := s.checker.Check(ctx, record)
	s.stats.RecordAnalysis(report.Score, report.ReadyToPublish())

	s.cacheMutex.Lock()
	s.cache[key] = cacheEntry{report: report, timestamp: time.Now()}
	s.cacheMutex.Unlock()
	return report
}

// CacheStats returns current cache counters.
func (s *Service) CacheStats() CacheStats {
	current := s.stats.GetCurrentStats()
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()
	return CacheStats{
		Entries:  len(s.cache),
		Hits:     current.CacheHits,
		Misses:   current.CacheMisses,
		CacheTTL: s.cacheTTL,
	}
}

// Stats returns the persistent statistics storage.
func (s *Service) Stats() *stats.Storage {
	return s.stats
}

func (s *Service) periodicCleanup() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// cleanup evicts expired entries, then the oldest entries past the
// size bound.
func (s *Service) cleanup() {
	now := time.Now()

	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	for key, entry := range s.cache {
		if now.Sub(entry.timestamp) > s.cacheTTL {
			delete(s.cache, key)
		}
	}

	if len(s.cache) > s.maxCacheSize {
		type aged struct {
			key       string
			timestamp time.Time
		}
		entries := make([]aged, 0, len(s.cache))
		for key, entry := range s.cache {
			entries = append(entries, aged{key, entry.timestamp})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})
		for i := 0; i < len(entries)-s.maxCacheSize; i++ {
			delete(s.cache, entries[i].key)
		}
	}
	s.lastCleanup = now
}

// Shutdown stops the cleanup loop and flushes statistics to disk.
func (s *Service) Shutdown() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() { close(s.stop) })
	if s.stats != nil {
		if err := s.stats.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown stats storage: %w", err)
		}
	}
	s.cacheMutex.Lock()
	s.cache = make(map[string]cacheEntry)
	s.cacheMutex.Unlock()
	return nil
}
