// Package scores persists score records keyed by user id, each with a bounded
// history of past calculations.
package scores

import (
	"context"
	"sync"

	"jobseeker-scoring/internal/models"
)

// Store is the score store. Get returns nil, nil when the user has never been
// scored. Save replaces the record and appends entry to its history, keeping
// the latest limit entries in insertion order.
type Store interface {
	Get(ctx context.Context, userID string) (*models.ScoreRecord, error)
	Save(ctx context.Context, userID string, record *models.ScoreRecord, entry models.HistoryEntry, limit int) error
}

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.ScoreRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*models.ScoreRecord)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*models.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) Save(_ context.Context, userID string, record *models.ScoreRecord, entry models.HistoryEntry, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []models.HistoryEntry
	if prev, ok := s.records[userID]; ok {
		history = prev.History
	}

	next := cloneRecord(record)
	next.UserID = userID
	next.History = trimHistory(append(append([]models.HistoryEntry(nil), history...), entry), limit)
	s.records[userID] = next
	return nil
}

func trimHistory(history []models.HistoryEntry, limit int) []models.HistoryEntry {
	if limit > 0 && len(history) > limit {
		return history[len(history)-limit:]
	}
	return history
}

func cloneRecord(r *models.ScoreRecord) *models.ScoreRecord {
	cp := *r
	cp.MissingItems = append([]models.MissingItem(nil), r.MissingItems...)
	cp.Recommendations = append([]models.Recommendation(nil), r.Recommendations...)
	if r.LastCalculated != nil {
		t := *r.LastCalculated
		cp.LastCalculated = &t
	}
	cp.History = make([]models.HistoryEntry, len(r.History))
	for i, h := range r.History {
		h.Changes = append([]string(nil), h.Changes...)
		cp.History[i] = h
	}
	return &cp
}
