package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiscope/internal/apperrors"
	"github.com/spacesedan/sentiscope/internal/models"
)

type fakeBackend struct {
	calls   [][]models.Review
	err     error
	short   bool
	waitCtx bool
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Analyze(ctx context.Context, reviews []models.Review) (models.AnalysisBatch, error) {
	f.calls = append(f.calls, reviews)
	if f.waitCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	batch := make(models.AnalysisBatch, 0, len(reviews))
	for _, r := range reviews {
		batch = append(batch, models.AnalysisEntry{
			Review:  r.Text,
			Results: []models.AspectResult{{Aspect: "general", Label: models.LabelPositive}},
		})
	}
	if f.short {
		batch = batch[:len(batch)-1]
	}
	return batch, nil
}

func reviews(texts ...string) []models.Review {
	out := make([]models.Review, 0, len(texts))
	for _, t := range texts {
		out = append(out, models.Review{Text: t, Product: models.DefaultSingleProduct})
	}
	return out
}

func TestSubmitRejectsEmptyWithoutCallingBackend(t *testing.T) {
	backend := &fakeBackend{}
	_, err := NewClient(backend, Options{}).Submit(context.Background(), nil)

	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Empty(t, backend.calls)
}

func TestSubmitPreservesOrderAcrossChunks(t *testing.T) {
	backend := &fakeBackend{}
	client := NewClient(backend, Options{BatchSize: 2})

	batch, err := client.Submit(context.Background(), reviews("a", "b", "c", "d", "e"))
	require.NoError(t, err)

	assert.Len(t, backend.calls, 3)
	require.Len(t, batch, 5)
	for i, want := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, want, batch[i].Review)
	}
}

func TestSubmitWrapsBackendFailure(t *testing.T) {
	cause := errors.New("connection refused")
	_, err := NewClient(&fakeBackend{err: cause}, Options{}).Submit(context.Background(), reviews("a"))

	assert.ErrorIs(t, err, apperrors.ErrRemoteAnalysis)
	assert.ErrorIs(t, err, cause)
}

func TestSubmitRejectsMisalignedResponse(t *testing.T) {
	_, err := NewClient(&fakeBackend{short: true}, Options{}).Submit(context.Background(), reviews("a", "b"))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRemoteAnalysis)
	assert.Contains(t, err.Error(), "1 results for 2 reviews")
}

func TestSubmitTimeout(t *testing.T) {
	client := NewClient(&fakeBackend{waitCtx: true}, Options{Timeout: 20 * time.Millisecond})

	_, err := client.Submit(context.Background(), reviews("a"))
	assert.ErrorIs(t, err, apperrors.ErrRemoteAnalysis)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}
