package models

type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

func (l Label) Valid() bool {
	switch l {
	case LabelPositive, LabelNeutral, LabelNegative:
		return true
	default:
		return false
	}
}

type AspectResult struct {
	Aspect string  `json:"aspect"`
	Label  Label   `json:"label"`
	Score  float64 `json:"score,omitempty"`
}

// AnalysisEntry holds the results for one submitted review. Entries carry no
// index of their own: they line up with the submitted reviews by position.
type AnalysisEntry struct {
	Review  string         `json:"review,omitempty"`
	Product string         `json:"product,omitempty"`
	Results []AspectResult `json:"results"`
}

type AnalysisBatch []AnalysisEntry

// Mentions counts the aspect results across the whole batch.
func (b AnalysisBatch) Mentions() int {
	n := 0
	for _, entry := range b {
		n += len(entry.Results)
	}
	return n
}

// AnalysisCompletedEvent is published once a batch has been analyzed and handed off.
type AnalysisCompletedEvent struct {
	RunID        string `json:"run_id"`
	Backend      string `json:"backend"`
	ReviewCount  int    `json:"review_count"`
	MentionCount int    `json:"mention_count"`
	CompletedAt  int64  `json:"completed_at"`
}
