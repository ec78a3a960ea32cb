package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiscope/internal/models"
)

const mixedReview = "I love the battery, it is amazing. The delivery was terrible and awful."

func TestDetectAspectsCatalogOrder(t *testing.T) {
	assert.Equal(t, []string{"Delivery", "Battery"}, DetectAspects(mixedReview))
	assert.Empty(t, DetectAspects("Hello there"))
}

func TestResolveAspect(t *testing.T) {
	cases := map[string]string{
		"battery": "Battery",
		"PRICE":   "Price",
		"batery":  "Battery",
		" Design": "Design",
		"batt":    "Battery",
		"pack":    "Packaging",
		"deliver": "Delivery",
		"qualty":  "Quality",
	}
	for in, want := range cases {
		got, ok := ResolveAspect(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ResolveAspect("screen")
	assert.False(t, ok)
	_, ok = ResolveAspect("  ")
	assert.False(t, ok)
}

func TestSimilarityMatchesDifflibRatio(t *testing.T) {
	assert.InDelta(t, 8.0/11.0, similarity("battery", "batt"), 1e-9)
	assert.InDelta(t, 8.0/13.0, similarity("packaging", "pack"), 1e-9)
	assert.InDelta(t, 1.0, similarity("price", "price"), 1e-9)
	assert.Less(t, similarity("service", "screen"), closeMatchCutoff)
}

func TestAnalyzeAspectsPerAspectLabels(t *testing.T) {
	results := AnalyzeAspects(mixedReview, nil)
	require.Len(t, results, 2)

	assert.Equal(t, "Delivery", results[0].Aspect)
	assert.Equal(t, models.LabelNegative, results[0].Label)
	assert.Equal(t, "Battery", results[1].Aspect)
	assert.Equal(t, models.LabelPositive, results[1].Label)
}

func TestAnalyzeAspectsRequestedKeepsOrder(t *testing.T) {
	results := AnalyzeAspects(mixedReview, []string{"battery", "screen", "delivery"})
	require.Len(t, results, 2)
	assert.Equal(t, "Battery", results[0].Aspect)
	assert.Equal(t, "Delivery", results[1].Aspect)
}

func TestAnalyzeAspectsGeneralFallback(t *testing.T) {
	results := AnalyzeAspects("Hello there", nil)
	require.Len(t, results, 1)
	assert.Equal(t, GeneralAspect, results[0].Aspect)
	assert.Equal(t, models.LabelNeutral, results[0].Label)

	results = AnalyzeAspects(mixedReview, []string{"screen"})
	require.Len(t, results, 1)
	assert.Equal(t, GeneralAspect, results[0].Aspect)
}

func TestVaderAnalyzerAlignsWithReviews(t *testing.T) {
	reviews := []models.Review{
		{Text: mixedReview, Product: "Phone"},
		{Text: "Hello there", Product: "Phone", Aspects: []string{}},
	}

	batch, err := NewVaderAnalyzer().Analyze(context.Background(), reviews)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, mixedReview, batch[0].Review)
	assert.Len(t, batch[0].Results, 2)
	for _, entry := range batch {
		for _, r := range entry.Results {
			assert.True(t, r.Label.Valid())
		}
	}
}

func TestVaderAnalyzerHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewVaderAnalyzer().Analyze(ctx, []models.Review{{Text: "fine"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("**Great** [deal](https://example.com) see www.example.com")
	assert.Equal(t, "Great deal see", got)
}
