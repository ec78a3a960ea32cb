// Package store persists the hand-off between the submission step and the report step:
// the submitted reviews and the batch that came back for them.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	SlotReviews         = "reviews"
	SlotAnalysisResults = "analysisResults"
)

type Handoff struct {
	Reviews []models.Review
	Batch   models.AnalysisBatch
}

// Store holds exactly one hand-off. Save writes both slots together; Load reports
// ok=false when no reviews have been saved yet.
type Store interface {
	Save(ctx context.Context, reviews []models.Review, batch models.AnalysisBatch) error
	Load(ctx context.Context) (Handoff, bool, error)
	Close() error
}

func encodeSlots(reviews []models.Review, batch models.AnalysisBatch) (reviewsJSON, batchJSON []byte, err error) {
	reviewsJSON, err = json.Marshal(reviews)
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", SlotReviews, err)
	}
	batchJSON, err = json.Marshal(batch)
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", SlotAnalysisResults, err)
	}
	return reviewsJSON, batchJSON, nil
}

func decodeSlots(reviewsJSON, batchJSON []byte) (Handoff, error) {
	var h Handoff
	if err := json.Unmarshal(reviewsJSON, &h.Reviews); err != nil {
		return Handoff{}, fmt.Errorf("decode %s: %w", SlotReviews, err)
	}
	if len(batchJSON) > 0 {
		if err := json.Unmarshal(batchJSON, &h.Batch); err != nil {
			return Handoff{}, fmt.Errorf("decode %s: %w", SlotAnalysisResults, err)
		}
	}
	return h, nil
}

// MemoryStore keeps the slots JSON encoded so loads never alias saved values.
type MemoryStore struct {
	mu      sync.Mutex
	reviews []byte
	batch   []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, reviews []models.Review, batch models.AnalysisBatch) error {
	reviewsJSON, batchJSON, err := encodeSlots(reviews, batch)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews, m.batch = reviewsJSON, batchJSON
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (Handoff, bool, error) {
	m.mu.Lock()
	reviewsJSON, batchJSON := m.reviews, m.batch
	m.mu.Unlock()

	if reviewsJSON == nil {
		return Handoff{}, false, nil
	}
	h, err := decodeSlots(reviewsJSON, batchJSON)
	if err != nil {
		return Handoff{}, false, err
	}
	return h, len(h.Reviews) > 0, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
