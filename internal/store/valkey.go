package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	valkeyKeyPrefix = "sentiscope:handoff:"
	valkeyRetries   = 3
)

// ValkeyStore writes both slots in one MULTI/EXEC so a report never sees a half hand-off.
type ValkeyStore struct {
	vc *clients.ValkeyClient
}

func NewValkeyStore(vc *clients.ValkeyClient) *ValkeyStore {
	return &ValkeyStore{vc: vc}
}

func valkeyKey(slot string) string {
	return valkeyKeyPrefix + slot
}

func (v *ValkeyStore) Save(ctx context.Context, reviews []models.Review, batch models.AnalysisBatch) error {
	reviewsJSON, batchJSON, err := encodeSlots(reviews, batch)
	if err != nil {
		return err
	}

	responses := v.vc.DoMultiWithRetry(ctx, func(b valkey.Builder) []valkey.Completed {
		return []valkey.Completed{
			b.Multi().Build(),
			b.Set().Key(valkeyKey(SlotReviews)).Value(valkey.BinaryString(reviewsJSON)).Build(),
			b.Set().Key(valkeyKey(SlotAnalysisResults)).Value(valkey.BinaryString(batchJSON)).Build(),
			b.Exec().Build(),
		}
	}, valkeyRetries)

	for _, res := range responses {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyStore] save hand-off: %w", err)
		}
	}

	slog.Info("[ValkeyStore] Hand-off saved", slog.Int("reviews", len(reviews)))
	return nil
}

func (v *ValkeyStore) Load(ctx context.Context) (Handoff, bool, error) {
	responses := v.vc.DoMultiWithRetry(ctx, func(b valkey.Builder) []valkey.Completed {
		return []valkey.Completed{
			b.Get().Key(valkeyKey(SlotReviews)).Build(),
			b.Get().Key(valkeyKey(SlotAnalysisResults)).Build(),
		}
	}, valkeyRetries)

	reviewsJSON, err := responses[0].AsBytes()
	if valkey.IsValkeyNil(err) {
		return Handoff{}, false, nil
	}
	if err != nil {
		return Handoff{}, false, fmt.Errorf("[ValkeyStore] read %s: %w", SlotReviews, err)
	}

	batchJSON, err := responses[1].AsBytes()
	if err != nil && !valkey.IsValkeyNil(err) {
		return Handoff{}, false, fmt.Errorf("[ValkeyStore] read %s: %w", SlotAnalysisResults, err)
	}

	h, err := decodeSlots(reviewsJSON, batchJSON)
	if err != nil {
		return Handoff{}, false, err
	}
	return h, len(h.Reviews) > 0, nil
}

func (v *ValkeyStore) Close() error {
	v.vc.Close()
	return nil
}
