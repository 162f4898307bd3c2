package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/content-readiness/backend/analyzer"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(analyzer.DefaultConfig(), t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	t.Cleanup(func() { svc.Shutdown() })
	return svc
}

func testRecord() analyzer.ContentRecord {
	return analyzer.ContentRecord{
		Title:          "Curtain guide for small apartments",
		Body:           "A curtain makes a small room feel bigger.\n\n## Styles\nPick light fabrics.",
		Excerpt:        "Short guide.",
		Slug:           "curtain-guide-small-apartments",
		TargetKeywords: []string{"curtain"},
	}
}

func TestAnalyzeCaching(t *testing.T) {
	svc := newTestService(t)
	record := testRecord()

	if svc.IsCached(record) {
		t.Error("Record should not be cached before first analysis")
	}

	first := svc.Analyze(context.Background(), record)
	if !svc.IsCached(record) {
		t.Error("Record should be cached after analysis")
	}

	second := svc.Analyze(context.Background(), record)
	if first.Score != second.Score {
		t.Errorf("Cached report differs: %d vs %d", first.Score, second.Score)
	}

	stats := svc.CacheStats()
	if stats.Hits != 1 {
		t.Errorf("Expected 1 cache hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 cache miss, got %d", stats.Misses)
	}
	if stats.Entries != 1 {
		t.Errorf("Expected 1 cache entry, got %d", stats.Entries)
	}
}

func TestCacheKeyDependsOnContent(t *testing.T) {
	svc := newTestService(t)

	record := testRecord()
	svc.Analyze(context.Background(), record)

	changed := record
	changed.Body += "\n\nMore text."
	if svc.IsCached(changed) {
		t.Error("Changed record should not share the cache slot")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	svc := newTestService(t)
	svc.SetCacheTTL(50 * time.Millisecond)

	record := testRecord()
	svc.Analyze(context.Background(), record)
	if !svc.IsCached(record) {
		t.Fatal("Record should be cached immediately after analysis")
	}

	time.Sleep(100 * time.Millisecond)
	if svc.IsCached(record) {
		t.Error("Record should not be cached after TTL expiration")
	}
}

func TestClearCache(t *testing.T) {
	svc := newTestService(t)

	svc.Analyze(context.Background(), testRecord())
	svc.ClearCache()
	if svc.CacheStats().Entries != 0 {
		t.Error("Cache should be empty after ClearCache")
	}
}

func TestConcurrentAnalyze(t *testing.T) {
	svc := newTestService(t)
	record := testRecord()

	concurrency := 50
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				svc.Analyze(context.Background(), record)
			} else {
				svc.IsCached(record)
			}
		}(i)
	}
	wg.Wait()

	report := svc.Analyze(context.Background(), record)
	if report.Score == 0 {
		t.Error("Expected a non-zero score for a populated record")
	}
}

func TestDuplicateTitleWiring(t *testing.T) {
	svc := newTestService(t)
	svc.SetDuplicateTitleFunc(func(ctx context.Context, title, currentID string) (bool, error) {
		return true, nil
	})

	report := svc.Analyze(context.Background(), testRecord())
	if report.Checklist.NoDuplicateTitle {
		t.Error("Expected duplicate title to be reported")
	}
}

func TestShutdownIdempotent(t *testing.T) {
	svc, err := New(analyzer.DefaultConfig(), t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	if err := svc.Shutdown(); err != nil {
		t.Errorf("First shutdown failed: %v", err)
	}
	if err := svc.Shutdown(); err != nil {
		t.Errorf("Second shutdown failed: %v", err)
	}
}
