// Package pipeline ties one user action to the components it touches:
// submit (analyze then hand off), report (load then aggregate) and export.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/sentiscope/internal/aggregate"
	"github.com/spacesedan/sentiscope/internal/apperrors"
	"github.com/spacesedan/sentiscope/internal/clients/kafka_client"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/report"
	"github.com/spacesedan/sentiscope/internal/store"
)

const (
	OpSubmit = "submit"
	OpReport = "report"
	OpExport = "export"
)

type Analyzer interface {
	Backend() string
	Submit(ctx context.Context, reviews []models.Review) (models.AnalysisBatch, error)
}

type Exporter interface {
	Export(ctx context.Context, html string, now time.Time) (string, error)
}

// Hooks let a caller show and clear a loading state. Every OnStart is followed by
// exactly one OnSuccess or OnFailure for the same op.
type Hooks struct {
	OnStart   func(op string)
	OnSuccess func(op string)
	OnFailure func(op string, err error)
}

type Runner struct {
	analyzer  Analyzer
	store     store.Store
	publisher kafka_client.Publisher
	exporter  Exporter
	hooks     Hooks

	now   func() time.Time
	newID func() string
}

func NewRunner(analyzer Analyzer, st store.Store, publisher kafka_client.Publisher, exporter Exporter, hooks Hooks) *Runner {
	if publisher == nil {
		publisher = kafka_client.NoopPublisher{}
	}
	return &Runner{
		analyzer:  analyzer,
		store:     st,
		publisher: publisher,
		exporter:  exporter,
		hooks:     hooks,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (r *Runner) run(op string, fn func() error) error {
	if r.hooks.OnStart != nil {
		r.hooks.OnStart(op)
	}
	if err := fn(); err != nil {
		slog.Error("[Pipeline] Operation failed",
			slog.String("op", op),
			slog.String("error", err.Error()))
		if r.hooks.OnFailure != nil {
			r.hooks.OnFailure(op, err)
		}
		return err
	}
	if r.hooks.OnSuccess != nil {
		r.hooks.OnSuccess(op)
	}
	return nil
}

// Submit analyzes reviews and, only if that fully succeeds and every label is known,
// replaces the stored hand-off.
func (r *Runner) Submit(ctx context.Context, reviews []models.Review) (models.AnalysisBatch, error) {
	var batch models.AnalysisBatch
	err := r.run(OpSubmit, func() error {
		runID := r.newID()
		slog.Info("[Pipeline] Submitting reviews",
			slog.String("run_id", runID),
			slog.String("backend", r.analyzer.Backend()),
			slog.Int("reviews", len(reviews)))

		result, err := r.analyzer.Submit(ctx, reviews)
		if err != nil {
			return err
		}

		// A batch the report step would reject must not replace the stored one.
		if _, _, err := aggregate.Aggregate(result); err != nil {
			return err
		}

		if err := r.store.Save(ctx, reviews, result); err != nil {
			return fmt.Errorf("save hand-off: %w", err)
		}

		event := models.AnalysisCompletedEvent{
			RunID:        runID,
			Backend:      r.analyzer.Backend(),
			ReviewCount:  len(reviews),
			MentionCount: result.Mentions(),
			CompletedAt:  r.now().Unix(),
		}
		if err := r.publisher.PublishAnalysisCompleted(ctx, event); err != nil {
			slog.Warn("[Pipeline] Failed to publish result event",
				slog.String("run_id", runID),
				slog.String("error", err.Error()))
		}

		batch = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Report loads the stored hand-off and builds the report. ok is false when nothing
// has been submitted yet.
func (r *Runner) Report(ctx context.Context) (models.Report, bool, error) {
	var (
		rep models.Report
		ok  bool
	)
	err := r.run(OpReport, func() error {
		var err error
		rep, ok, err = r.load(ctx)
		return err
	})
	return rep, ok, err
}

// Export renders the stored report and writes it as a paginated document.
func (r *Runner) Export(ctx context.Context) (string, error) {
	var path string
	err := r.run(OpExport, func() error {
		if r.exporter == nil {
			return apperrors.InvalidArgument("no exporter configured")
		}

		rep, ok, err := r.load(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.InvalidArgument("no analysis results to export; submit reviews first")
		}

		page, err := report.HTML(rep)
		if err != nil {
			return err
		}

		path, err = r.exporter.Export(ctx, page, rep.GeneratedAt)
		return err
	})
	return path, err
}

func (r *Runner) load(ctx context.Context) (models.Report, bool, error) {
	h, ok, err := r.store.Load(ctx)
	if err != nil {
		return models.Report{}, false, fmt.Errorf("load hand-off: %w", err)
	}
	if !ok {
		return models.Report{}, false, nil
	}

	rep, err := report.Build(h.Reviews, h.Batch, r.now())
	if err != nil {
		return models.Report{}, false, err
	}
	return rep, true, nil
}
