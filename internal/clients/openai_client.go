package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	openAIRequestTimeout = 60 * time.Second
	defaultOpenAIModel   = openai.ChatModelGPT4oMini
)

const openAIAspectPrompt = `You label the sentiment of a product review.
For each aspect listed in "aspects", return its sentiment in the review.
If "aspects" is empty, detect the product aspects the review talks about (for example Price, Delivery, Quality, Battery).
If no aspect applies, return a single aspect named "general".
Every label MUST be exactly one of: positive, neutral, negative.

### STRICT OUTPUT FORMAT
Return only valid JSON, no markdown, no extra text:
{"results": [{"aspect": "XXX", "label": "positive"}]}
`

type openAIAspectResponse struct {
	Results []models.AspectResult `json:"results"`
}

// OpenAIAnalysisClient labels aspects with a chat completion, one request per review.
type OpenAIAnalysisClient struct {
	Client *openai.Client
	Model  string
}

// NewOpenAIAnalysisClient builds the client. opts are applied after the defaults.
func NewOpenAIAnalysisClient(apiKey, model string, opts ...option.RequestOption) (*OpenAIAnalysisClient, error) {
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		return nil, fmt.Errorf("[OpenAIClient] missing OPENAI_API_KEY")
	}
	if model == "" {
		model = string(defaultOpenAIModel)
	}

	client := openai.NewClient(append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
	}, opts...)...)
	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIAnalysisClient{Client: client, Model: model}, nil
}

func (o *OpenAIAnalysisClient) Name() string {
	return "openai"
}

func (o *OpenAIAnalysisClient) Analyze(ctx context.Context, reviews []models.Review) (models.AnalysisBatch, error) {
	batch := make(models.AnalysisBatch, 0, len(reviews))
	for i, review := range reviews {
		results, err := o.analyzeOne(ctx, review)
		if err != nil {
			return nil, fmt.Errorf("review %d: %w", i, err)
		}
		batch = append(batch, models.AnalysisEntry{
			Review:  review.Text,
			Product: review.Product,
			Results: results,
		})
	}
	return batch, nil
}

func (o *OpenAIAnalysisClient) analyzeOne(ctx context.Context, review models.Review) ([]models.AspectResult, error) {
	payload, err := json.Marshal(map[string]any{
		"review":  review.Text,
		"aspects": review.Aspects,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal review: %w", err)
	}

	completion, err := o.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openAIAspectPrompt),
			openai.UserMessage(string(payload)),
		}),
		Model:       openai.F(openai.ChatModel(o.Model)),
		Temperature: openai.Float(0),
	})
	if err != nil {
		slog.Warn("[OpenAIClient] OpenAI API call failed",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("openai returned an empty response")
	}

	var parsed openAIAspectResponse
	raw := cleanOpenAIResponse(completion.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse openai response: %w", err)
	}
	return parsed.Results, nil
}

// cleanOpenAIResponse strips code fences the model sometimes wraps JSON in.
func cleanOpenAIResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
