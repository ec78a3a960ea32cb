package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiscope/internal/apperrors"
	"github.com/spacesedan/sentiscope/internal/models"
)

var generatedAt = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func sampleBatch() models.AnalysisBatch {
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

func TestBuild(t *testing.T) {
	reviews := []models.Review{{Text: "a"}, {Text: "b"}}
	r, err := Build(reviews, sampleBatch(), generatedAt)
	require.NoError(t, err)

	assert.Equal(t, 2, r.ReviewCount)
	assert.Equal(t, models.SentimentSummary{Positive: 1, Neutral: 1, Negative: 1, Total: 3}, r.Summary)
	assert.Equal(t, models.Percentages{Positive: 33, Neutral: 33, Negative: 33}, r.Percentages)
	assert.Equal(t, [3]int{1, 1, 1}, r.Donut)
	assert.Equal(t, []string{"battery", "screen"}, r.Radar.Labels)
	assert.Equal(t, []int{2, 1}, r.Radar.Series)
	require.Len(t, r.Bars, 2)
	assert.Equal(t, [3]int{1, 0, 1}, r.Bars[0].Counts)
}

func TestBuildMalformed(t *testing.T) {
	batch := models.AnalysisBatch{{Results: []models.AspectResult{{Aspect: "x", Label: "mixed"}}}}
	_, err := Build(nil, batch, generatedAt)
	assert.ErrorIs(t, err, apperrors.ErrMalformedData)
}

func TestMarkdown(t *testing.T) {
	r, err := Build(nil, sampleBatch(), generatedAt)
	require.NoError(t, err)

	md := Markdown(r)
	assert.Contains(t, md, "Out of 3 mentions, 1 (33%) were positive")
	assert.Contains(t, md, "| battery | 1 | 0 | 1 | 2 |")
	assert.Less(t, strings.Index(md, "| battery"), strings.Index(md, "| screen"))
}

func TestMarkdownNoAspects(t *testing.T) {
	r, err := Build(nil, nil, generatedAt)
	require.NoError(t, err)
	assert.Contains(t, Markdown(r), "No aspects were mentioned")
}

func TestHTML(t *testing.T) {
	r, err := Build(nil, sampleBatch(), generatedAt)
	require.NoError(t, err)

	page, err := HTML(r)
	require.NoError(t, err)

	assert.Contains(t, page, "October 2026")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "battery Analysis")
	assert.Contains(t, page, "screen received 0 positive, 1 neutral, and 0 negative mentions.")
	// one row for the overview charts, one holding both aspect panels
	assert.Equal(t, 2, strings.Count(page, "<div class='row'>"))
	assert.Equal(t, 1, strings.Count(page, "<polygon"))
}

func TestHTMLEscapesAspectNames(t *testing.T) {
	batch := models.AnalysisBatch{{Results: []models.AspectResult{{Aspect: "<b>fit</b>", Label: models.LabelPositive}}}}
	r, err := Build(nil, batch, generatedAt)
	require.NoError(t, err)

	page, err := HTML(r)
	require.NoError(t, err)
	assert.NotContains(t, page, "<b>fit</b>")
	assert.Contains(t, page, "&lt;b&gt;fit&lt;/b&gt; Analysis")
}

func TestBarSVGZeroValues(t *testing.T) {
	svg := BarSVG([]string{"Positive", "Neutral", "Negative"}, []int{0, 0, 0}, []string{"#000"})
	assert.Equal(t, 3, strings.Count(svg, "height='0'"))
}
