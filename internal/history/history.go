// Package history holds the append-only screening history of a session.
package history

import (
	"context"
	"sync"

	"github.com/khrees2412/screener/pkg/models"
)

// Store is the session-scoped history. It is owned by the caller that
// drives evaluations and handed to whatever produces records.
type Store interface {
	Append(ctx context.Context, rec models.ScreeningRecord) error
	List(ctx context.Context) ([]models.ScreeningRecord, error)
	Clear(ctx context.Context) error
}

// MemoryStore keeps history for the lifetime of the process
type MemoryStore struct {
	mu      sync.Mutex
	records []models.ScreeningRecord
}

// NewMemoryStore returns an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(_ context.Context, rec models.ScreeningRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// List returns a copy of the records in insertion order
func (m *MemoryStore) List(_ context.Context) ([]models.ScreeningRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ScreeningRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

// Filter returns the records with the given verdict. An empty verdict
// keeps everything. The input slice is not modified.
func Filter(records []models.ScreeningRecord, verdict models.Verdict) []models.ScreeningRecord {
	if verdict == "" {
		return records
	}
	out := []models.ScreeningRecord{}
	for _, rec := range records {
		if rec.Result.Verdict == verdict {
			out = append(out, rec)
		}
	}
	return out
}

// Stats summarises a history
type Stats struct {
	Total        int
	ByVerdict    map[models.Verdict]int
	BySource     map[models.Source]int
	AverageScore float64
	TopScore     int
	TopCandidate string
}

// Summarize computes totals per verdict and source and the average score
func Summarize(records []models.ScreeningRecord) Stats {
	stats := Stats{
		Total:     len(records),
		ByVerdict: make(map[models.Verdict]int),
		BySource:  make(map[models.Source]int),
	}

	sum := 0
	for i, rec := range records {
		stats.ByVerdict[rec.Result.Verdict]++
		stats.BySource[rec.Source]++
		sum += rec.Result.Score
		if i == 0 || rec.Result.Score > stats.TopScore {
			stats.TopScore = rec.Result.Score
			stats.TopCandidate = rec.Input.DisplayName()
		}
	}

	if len(records) > 0 {
		stats.AverageScore = float64(sum) / float64(len(records))
	}
	return stats
}
