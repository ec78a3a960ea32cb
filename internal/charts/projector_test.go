package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/sentiscope/internal/models"
)

func TestProjectDonut(t *testing.T) {
	got := ProjectDonut(models.SentimentSummary{Positive: 4, Neutral: 2, Negative: 1, Total: 7})
	assert.Equal(t, [3]int{4, 2, 1}, got)
}

func TestProjectRadarKeepsOrder(t *testing.T) {
	labels, series := ProjectRadar([]models.AspectStat{
		{Name: "battery", Positive: 1, Negative: 1},
		{Name: "screen", Neutral: 1},
		{Name: "Price", Positive: 3, Neutral: 1, Negative: 2},
	})

	assert.Equal(t, []string{"battery", "screen", "Price"}, labels)
	assert.Equal(t, []int{2, 1, 6}, series)
}

func TestProjectRadarEmpty(t *testing.T) {
	labels, series := ProjectRadar(nil)
	assert.Empty(t, labels)
	assert.Empty(t, series)
}

func TestProject(t *testing.T) {
	stats := []models.AspectStat{{Name: "battery", Positive: 1, Negative: 2}}
	donut, radar, bars := Project(models.SentimentSummary{Positive: 1, Negative: 2, Total: 3}, stats)

	assert.Equal(t, [3]int{1, 0, 2}, donut)
	assert.Equal(t, []string{"battery"}, radar.Labels)
	assert.Equal(t, []int{3}, radar.Series)
	assert.Equal(t, []models.AspectBar{{Name: "battery", Counts: [3]int{1, 0, 2}}}, bars)
}
