package models

import "time"

type SentimentSummary struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
	Total    int `json:"total"`
}

type AspectStat struct {
	Name     string `json:"name"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
}

func (a AspectStat) Mentions() int {
	return a.Positive + a.Neutral + a.Negative
}

type Percentages struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// PagePlacement positions the full report image on one output page.
// VerticalOffset is relative to the page top and is zero or negative.
type PagePlacement struct {
	PageIndex      int     `json:"page_index"`
	VerticalOffset float64 `json:"vertical_offset"`
}

type RadarSeries struct {
	Labels []string `json:"labels"`
	Series []int    `json:"series"`
}

type AspectBar struct {
	Name   string `json:"name"`
	Counts [3]int `json:"counts"`
}

// Report is everything the report view needs, derived from one hand-off.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	ReviewCount int              `json:"review_count"`
	Summary     SentimentSummary `json:"summary"`
	Percentages Percentages      `json:"percentages"`
	Aspects     []AspectStat     `json:"aspects"`
	Donut       [3]int           `json:"donut"`
	Radar       RadarSeries      `json:"radar"`
	Bars        []AspectBar      `json:"bars"`
}
