package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/sentiscope/internal/models"
)

type analyzeRequest struct {
	Reviews []models.Review `json:"reviews"`
}

// RemoteAnalysisClient calls the aspect sentiment service over HTTP.
type RemoteAnalysisClient struct {
	Client         *http.Client
	Endpoint       string
	HealthEndpoint string
}

func NewRemoteAnalysisClient(endpoint, healthEndpoint string) *RemoteAnalysisClient {
	if endpoint == "" {
		endpoint = DEFAULT_ANALYSIS_ENDPOINT
	}
	if healthEndpoint == "" {
		healthEndpoint = DEFAULT_ANALYSIS_HEALTH_ENDPOINT
	}
	slog.Info("[RemoteAnalysisClient] Initializing Client",
		slog.String("endpoint", endpoint))

	// Deadlines come from the caller's context.
	return &RemoteAnalysisClient{
		Client:         &http.Client{},
		Endpoint:       endpoint,
		HealthEndpoint: healthEndpoint,
	}
}

func (r *RemoteAnalysisClient) Name() string {
	return "remote"
}

func (r *RemoteAnalysisClient) Analyze(ctx context.Context, reviews []models.Review) (models.AnalysisBatch, error) {
	var result models.AnalysisBatch
	slog.Info("[RemoteAnalysisClient] Requesting aspect sentiment analysis",
		slog.Int("reviews", len(reviews)))
	start := time.Now()

	if err := r.postJSON(ctx, r.Endpoint, analyzeRequest{Reviews: reviews}, &result); err != nil {
		slog.Error("[RemoteAnalysisClient] Sentiment Analysis request failed",
			slog.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	slog.Info("[RemoteAnalysisClient] Sentiment Analysis request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// HealthCheck reports whether the analysis service answers its health endpoint with a 2xx.
func (r *RemoteAnalysisClient) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, HEALTHCHECK_TIMEOUT)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.HealthEndpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := r.Client.Do(req)
	if err != nil {
		slog.Warn("[RemoteAnalysisClient] Health check failed",
			slog.String("error", errMsg(err, resp)))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (r *RemoteAnalysisClient) postJSON(ctx context.Context, endpoint string, input any, output any) error {
	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[RemoteAnalysisClient] Failed to marshal input",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("[RemoteAnalysisClient] Failed to build request",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := r.Client.Do(req)
	if err != nil {
		slog.Error("[RemoteAnalysisClient] Request failed",
			slog.String("endpoint", endpoint),
			slog.String("error", errMsg(err, resp)))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("[RemoteAnalysisClient] Failed to read response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("[RemoteAnalysisClient] Server returned an error",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return fmt.Errorf("server error: %s: %s", errMsg(nil, resp), strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[RemoteAnalysisClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
