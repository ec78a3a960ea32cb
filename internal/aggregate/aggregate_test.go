package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiscope/internal/apperrors"
	"github.com/spacesedan/sentiscope/internal/models"
)

func twoReviewBatch() models.AnalysisBatch {
	return models.AnalysisBatch{
		{Results: []models.AspectResult{
			{Aspect: "battery", Label: models.LabelPositive},
			{Aspect: "screen", Label: models.LabelNeutral},
		}},
		{Results: []models.AspectResult{
			{Aspect: "battery", Label: models.LabelNegative},
		}},
	}
}

func TestAggregateScenario(t *testing.T) {
	summary, stats, err := Aggregate(twoReviewBatch())
	require.NoError(t, err)

	assert.Equal(t, models.SentimentSummary{Positive: 1, Neutral: 1, Negative: 1, Total: 3}, summary)
	require.Len(t, stats, 2)
	assert.Equal(t, models.AspectStat{Name: "battery", Positive: 1, Negative: 1}, stats[0])
	assert.Equal(t, models.AspectStat{Name: "screen", Neutral: 1}, stats[1])
	assert.Equal(t, 2, stats[0].Mentions())
	assert.Equal(t, 1, stats[1].Mentions())
}

func TestAggregateTotalsMatchMentions(t *testing.T) {
	batch := models.AnalysisBatch{
		{Results: []models.AspectResult{{Aspect: "Price", Label: models.LabelNegative}}},
		{Results: nil},
		{Results: []models.AspectResult{
			{Aspect: "Delivery", Label: models.LabelPositive},
			{Aspect: "price", Label: models.LabelPositive},
			{Aspect: "Price", Label: models.LabelNeutral},
		}},
	}

	summary, stats, err := Aggregate(batch)
	require.NoError(t, err)

	assert.Equal(t, batch.Mentions(), summary.Total)
	assert.Equal(t, summary.Positive+summary.Neutral+summary.Negative, summary.Total)

	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Price", "Delivery", "price"}, names)
}

func TestAggregateOrderIsStable(t *testing.T) {
	batch := models.AnalysisBatch{
		{Results: []models.AspectResult{
			{Aspect: "z", Label: models.LabelPositive},
			{Aspect: "a", Label: models.LabelPositive},
			{Aspect: "m", Label: models.LabelNegative},
		}},
	}

	_, first, err := Aggregate(batch)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		_, again, err := Aggregate(batch)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAggregateEmptyBatch(t *testing.T) {
	for _, batch := range []models.AnalysisBatch{nil, {}, {{}, {Results: []models.AspectResult{}}}} {
		summary, stats, err := Aggregate(batch)
		require.NoError(t, err)
		assert.Equal(t, models.SentimentSummary{}, summary)
		assert.NotNil(t, stats)
		assert.Empty(t, stats)
	}
}

func TestAggregateRejectsUnknownLabel(t *testing.T) {
	batch := twoReviewBatch()
	batch[1].Results = append(batch[1].Results, models.AspectResult{Aspect: "screen", Label: "mixed"})

	summary, stats, err := Aggregate(batch)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedData)
	assert.Contains(t, err.Error(), `"mixed"`)
	assert.Equal(t, models.SentimentSummary{}, summary)
	assert.Nil(t, stats)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 0, Percent(5, 0))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 100, Percent(4, 4))
	assert.Equal(t, 13, Percent(1, 8))
}

func TestSummaryPercentagesZeroTotal(t *testing.T) {
	assert.Equal(t, models.Percentages{}, SummaryPercentages(models.SentimentSummary{}))
}

func TestSummaryText(t *testing.T) {
	text := SummaryText(models.SentimentSummary{Positive: 1, Neutral: 1, Negative: 1, Total: 3})
	assert.Equal(t, "Out of 3 mentions, 1 (33%) were positive, 1 (33%) neutral, and 1 (33%) negative.", text)

	assert.Equal(t, "battery received 1 positive, 0 neutral, and 1 negative mentions.",
		AspectText(models.AspectStat{Name: "battery", Positive: 1, Negative: 1}))
}
