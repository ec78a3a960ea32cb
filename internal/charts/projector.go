package charts

import "github.com/spacesedan/sentiscope/internal/models"

// Series order shared by every sentiment chart.
var (
	Labels = [3]string{"Positive", "Neutral", "Negative"}
	Colors = [3]string{"#16a34a", "#ca8a04", "#dc2626"}
)

func ProjectDonut(summary models.SentimentSummary) [3]int {
	return [3]int{summary.Positive, summary.Neutral, summary.Negative}
}

// ProjectRadar returns aspect names and total mentions per aspect, index aligned
// and in the order the stats were given.
func ProjectRadar(stats []models.AspectStat) (labels []string, series []int) {
	labels = make([]string, 0, len(stats))
	series = make([]int, 0, len(stats))
	for _, stat := range stats {
		labels = append(labels, stat.Name)
		series = append(series, stat.Mentions())
	}
	return labels, series
}

func ProjectBar(stat models.AspectStat) [3]int {
	return [3]int{stat.Positive, stat.Neutral, stat.Negative}
}

// Project builds every chart series for a report in one pass.
func Project(summary models.SentimentSummary, stats []models.AspectStat) (donut [3]int, radar models.RadarSeries, bars []models.AspectBar) {
	donut = ProjectDonut(summary)
	radar.Labels, radar.Series = ProjectRadar(stats)
	bars = make([]models.AspectBar, 0, len(stats))
	for _, stat := range stats {
		bars = append(bars, models.AspectBar{Name: stat.Name, Counts: ProjectBar(stat)})
	}
	return donut, radar, bars
}
