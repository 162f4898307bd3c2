package stats

import (
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer storage.Shutdown()

	t.Run("RecordCounters", func(t *testing.T) {
		storage.RecordCacheHit()
		storage.RecordCacheMiss()
		storage.RecordCacheMiss()
		storage.RecordAnalysis(80, true)
		storage.RecordAnalysis(40, false)

		stats := storage.GetCurrentStats()
		if stats.CacheHits != 1 {
			t.Errorf("Expected 1 cache hit, got %d", stats.CacheHits)
		}
		if stats.CacheMisses != 2 {
			t.Errorf("Expected 2 cache misses, got %d", stats.CacheMisses)
		}
		if stats.AnalysesRun != 2 {
			t.Errorf("Expected 2 analyses, got %d", stats.AnalysesRun)
		}
		if stats.ReadyCount != 1 {
			t.Errorf("Expected 1 ready record, got %d", stats.ReadyCount)
		}
		if avg := stats.AverageScore(); avg != 60 {
			t.Errorf("Expected average score 60, got %.1f", avg)
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		if err := storage.save(); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		storage2, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create second storage: %v", err)
		}
		defer storage2.Shutdown()

		stats := storage2.GetCurrentStats()
		if stats.AnalysesRun != 2 {
			t.Errorf("Expected 2 analyses after reload, got %d", stats.AnalysesRun)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		oldMonth := time.Now().AddDate(0, -3, 0).Format("2006-01")
		storage.mutex.Lock()
		storage.stats[oldMonth] = &MonthlyStats{AnalysesRun: 100}
		storage.mutex.Unlock()

		storage.Cleanup()

		if _, exists := storage.GetMonthlyStats(oldMonth); exists {
			t.Error("Old stats should have been cleaned up")
		}
		if _, exists := storage.GetMonthlyStats(time.Now().Format("2006-01")); !exists {
			t.Error("Current month should survive cleanup")
		}
	})

	t.Run("AllMonths", func(t *testing.T) {
		months := storage.GetAllMonths()
		if len(months) == 0 {
			t.Fatal("Expected at least the current month")
		}
		for i := 1; i < len(months); i++ {
			if months[i-1] < months[i] {
				t.Errorf("Months not sorted newest first: %v", months)
			}
		}
	})
}

func TestAverageScoreEmpty(t *testing.T) {
	var m MonthlyStats
	if m.AverageScore() != 0 {
		t.Errorf("Expected 0 average for empty month, got %.1f", m.AverageScore())
	}
}
