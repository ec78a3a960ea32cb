// Package analysis is the only path through which reviews reach a sentiment backend.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/sentiscope/internal/apperrors"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/utils"
)

// Backend is one way of producing per-aspect labels for a list of reviews.
// Implementations must return exactly one entry per review, in input order.
type Backend interface {
	Name() string
	Analyze(ctx context.Context, reviews []models.Review) (models.AnalysisBatch, error)
}

type Options struct {
	// Timeout aborts an in-flight submission; zero disables it.
	Timeout time.Duration
	// BatchSize splits large submissions into sequential requests; zero sends one request.
	BatchSize int
}

type Client struct {
	backend Backend
	opts    Options
}

func NewClient(backend Backend, opts Options) *Client {
	return &Client{backend: backend, opts: opts}
}

func (c *Client) Backend() string {
	return c.backend.Name()
}

// Submit analyzes reviews and returns a batch aligned with them by position.
// Every backend or protocol failure comes back as a RemoteAnalysisError; nothing is retried.
func (c *Client) Submit(ctx context.Context, reviews []models.Review) (models.AnalysisBatch, error) {
	if len(reviews) == 0 {
		return nil, apperrors.InvalidArgument("submit requires at least one review")
	}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	chunks := utils.Chunk(reviews, c.opts.BatchSize)
	batch := make(models.AnalysisBatch, 0, len(reviews))

	for i, chunk := range chunks {
		entries, err := c.backend.Analyze(ctx, chunk)
		if err != nil {
			slog.Error("[AnalysisClient] Analysis request failed",
				slog.String("backend", c.backend.Name()),
				slog.Int("chunk", i),
				slog.Duration("elapsed", time.Since(start)),
				slog.String("error", err.Error()))
			return nil, remoteError(err)
		}
		if len(entries) != len(chunk) {
			return nil, apperrors.RemoteAnalysis(
				fmt.Sprintf("analysis service returned %d results for %d reviews", len(entries), len(chunk)), nil)
		}
		batch = append(batch, entries...)
	}

	slog.Info("[AnalysisClient] Analysis request successful",
		slog.String("backend", c.backend.Name()),
		slog.Int("reviews", len(reviews)),
		slog.Int("requests", len(chunks)),
		slog.Duration("elapsed", time.Since(start)))

	return batch, nil
}

func remoteError(err error) error {
	if apperrors.IsKind(err, apperrors.KindRemoteAnalysis) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.RemoteAnalysis("analysis request timed out", err)
	}
	return apperrors.RemoteAnalysis("analysis failed", err)
}
