package sentiment

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/sentiscope/internal/models"
)

const labelThreshold = 0.20

var (
	analyzer       = govader.NewSentimentIntensityAnalyzer()
	linkPattern    = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	sentenceSplit  = regexp.MustCompile(`[.!?\n]+`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(RemoveLinks(input)), blackfriday.WithNoExtensions())
	plainText := htmlTagPattern.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(plainText), " ")
}

// AnalyzeWithVADER scores text and buckets the compound score into a label.
func AnalyzeWithVADER(text string) (float64, models.Label) {
	score := analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound

	switch {
	case score >= labelThreshold:
		return score, models.LabelPositive
	case score <= -labelThreshold:
		return score, models.LabelNegative
	default:
		return score, models.LabelNeutral
	}
}

// VaderAnalyzer is the local analysis backend. It needs no network.
type VaderAnalyzer struct{}

func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{}
}

func (v *VaderAnalyzer) Name() string {
	return "vader"
}

func (v *VaderAnalyzer) Analyze(ctx context.Context, reviews []models.Review) (models.AnalysisBatch, error) {
	batch := make(models.AnalysisBatch, 0, len(reviews))
	for _, review := range reviews {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch = append(batch, models.AnalysisEntry{
			Review:  review.Text,
			Product: review.Product,
			Results: AnalyzeAspects(review.Text, review.Aspects),
		})
	}
	return batch, nil
}

// AnalyzeAspects labels each requested aspect, or the detected ones when none are
// requested. Reviews with no usable aspect get a single "general" result.
func AnalyzeAspects(text string, requested []string) []models.AspectResult {
	var aspects []string
	if len(requested) > 0 {
		for _, r := range requested {
			if name, ok := ResolveAspect(r); ok {
				aspects = append(aspects, name)
			}
		}
		slog.Debug("[Vader] Analyzing requested aspects", slog.Any("aspects", aspects))
	} else {
		aspects = DetectAspects(text)
		slog.Debug("[Vader] Auto-detected aspects", slog.Any("aspects", aspects))
	}

	if len(aspects) == 0 {
		score, label := AnalyzeWithVADER(text)
		return []models.AspectResult{{Aspect: GeneralAspect, Label: label, Score: score}}
	}

	results := make([]models.AspectResult, 0, len(aspects))
	for _, aspect := range aspects {
		score, label := AnalyzeWithVADER(aspectContext(text, aspect))
		results = append(results, models.AspectResult{Aspect: aspect, Label: label, Score: score})
	}
	return results
}

// aspectContext keeps the sentences that mention the aspect, or the whole text if none do.
func aspectContext(text, aspect string) string {
	keywords := keywordsFor(aspect)
	var picked []string
	for _, sentence := range sentenceSplit.Split(text, -1) {
		if mentions(strings.ToLower(sentence), keywords) {
			picked = append(picked, strings.TrimSpace(sentence))
		}
	}
	if len(picked) == 0 {
		return text
	}
	return strings.Join(picked, ". ")
}
