// Package aggregate folds analysis batches into the summary statistics every
// downstream chart and percentage is derived from.
package aggregate

import (
	"fmt"
	"math"

	"github.com/spacesedan/sentiscope/internal/apperrors"
	"github.com/spacesedan/sentiscope/internal/models"
)

// Aggregate counts every aspect result in the batch once. Aspect stats come back
// in first-seen order across the in-order traversal of entries and their results.
// An unrecognized label fails the whole batch; nothing is partially counted.
func Aggregate(batch models.AnalysisBatch) (models.SentimentSummary, []models.AspectStat, error) {
	var summary models.SentimentSummary
	stats := make([]models.AspectStat, 0)
	index := make(map[string]int)

	for i, entry := range batch {
		for j, result := range entry.Results {
			if !result.Label.Valid() {
				return models.SentimentSummary{}, nil, apperrors.MalformedData(
					"entry %d result %d: unrecognized label %q for aspect %q", i, j, result.Label, result.Aspect)
			}

			pos, seen := index[result.Aspect]
			if !seen {
				pos = len(stats)
				index[result.Aspect] = pos
				stats = append(stats, models.AspectStat{Name: result.Aspect})
			}

			stat := &stats[pos]
			switch result.Label {
			case models.LabelPositive:
				summary.Positive++
				stat.Positive++
			case models.LabelNeutral:
				summary.Neutral++
				stat.Neutral++
			case models.LabelNegative:
				summary.Negative++
				stat.Negative++
			}
			summary.Total++
		}
	}

	return summary, stats, nil
}

// Percent is count/total as a whole percentage, rounded half away from zero.
// A zero total reports 0.
func Percent(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

func SummaryPercentages(summary models.SentimentSummary) models.Percentages {
	return models.Percentages{
		Positive: Percent(summary.Positive, summary.Total),
		Neutral:  Percent(summary.Neutral, summary.Total),
		Negative: Percent(summary.Negative, summary.Total),
	}
}

// SummaryText is the one-line overview shown above the charts.
func SummaryText(summary models.SentimentSummary) string {
	p := SummaryPercentages(summary)
	return fmt.Sprintf("Out of %d mentions, %d (%d%%) were positive, %d (%d%%) neutral, and %d (%d%%) negative.",
		summary.Total,
		summary.Positive, p.Positive,
		summary.Neutral, p.Neutral,
		summary.Negative, p.Negative)
}

func AspectText(stat models.AspectStat) string {
	return fmt.Sprintf("%s received %d positive, %d neutral, and %d negative mentions.",
		stat.Name, stat.Positive, stat.Neutral, stat.Negative)
}
