package report

import (
	"time"

	"github.com/spacesedan/sentiscope/internal/aggregate"
	"github.com/spacesedan/sentiscope/internal/charts"
	"github.com/spacesedan/sentiscope/internal/models"
)

// Build folds a batch into everything the report view and the export need.
func Build(reviews []models.Review, batch models.AnalysisBatch, now time.Time) (models.Report, error) {
	summary, stats, err := aggregate.Aggregate(batch)
	if err != nil {
		return models.Report{}, err
	}

	donut, radar, bars := charts.Project(summary, stats)
	return models.Report{
		GeneratedAt: now,
		ReviewCount: len(reviews),
		Summary:     summary,
		Percentages: aggregate.SummaryPercentages(summary),
		Aspects:     stats,
		Donut:       donut,
		Radar:       radar,
		Bars:        bars,
	}, nil
}
