package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"ikigai/domain/session"
	"ikigai/internal/config"
	apperrors "ikigai/internal/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the Gemini generateContent API and parses the response
// into a structured analysis. Rate-limit responses are retried with
// exponential backoff; every other failure aborts immediately so a
// deterministic error (bad key, malformed output) never burns the budget.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client

	maxRetries int
	baseDelay  time.Duration
}

// providerError carries the HTTP status so the retry loop can tell
// throttling apart from everything else
type providerError struct {
	status int
	body   string
}

func (e *providerError) Error() string {
	return fmt.Sprintf("gemini API error (status %d): %s", e.status, e.body)
}

// NewGeminiClient creates a Gemini analysis client from AI configuration
func NewGeminiClient(cfg config.AIConfig) *GeminiClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	log.Printf("[GeminiClient] Initializing client with model=%s, maxRetries=%d, baseDelay=%v",
		cfg.Model, cfg.MaxRetries, cfg.BaseDelay)

	return &GeminiClient{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseDelay,
	}
}

// AnalyzeSession produces the Ikigai analysis for the given context and
// answers. On HTTP 429 the call is retried up to the budget, waiting
// baseDelay*2^attempt between attempts. The returned error hides provider
// detail from the caller; the full chain is logged here.
func (c *GeminiClient) AnalyzeSession(ctx context.Context, userCtx session.Context, answers session.Answers) (*session.Analysis, error) {
	prompt := BuildPrompt(userCtx, answers)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		analysis, err := c.generate(ctx, prompt)
		if err == nil {
			log.Printf("[GeminiClient] Analysis succeeded on attempt %d/%d", attempt+1, c.maxRetries)
			return analysis, nil
		}

		lastErr = err
		log.Printf("[GeminiClient] Attempt %d/%d failed: %v", attempt+1, c.maxRetries, err)

		var provErr *providerError
		if errors.As(err, &provErr) && provErr.status == http.StatusTooManyRequests {
			delay := c.baseDelay * (1 << attempt)
			log.Printf("[GeminiClient] Rate limited, waiting %v before retrying", delay)
			if err := sleep(ctx, delay); err != nil {
				return nil, apperrors.AIProviderError(err)
			}
			continue
		}

		// Not a rate limit: retrying would just repeat the same failure.
		break
	}

	log.Printf("[GeminiClient] Analysis failed after all attempts: %v", lastErr)
	return nil, apperrors.AIProviderError(lastErr)
}

// generate performs one generateContent call and parses the result
func (c *GeminiClient) generate(ctx context.Context, prompt string) (*session.Analysis, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	type requestBody struct {
		Contents []content `json:"contents"`
	}

	body, err := json.Marshal(requestBody{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &providerError{status: resp.StatusCode, body: string(respBody)}
	}

	type geminiResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	var envelope geminiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response envelope: %w", err)
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no candidates in gemini response")
	}

	text := cleanJSONContent(envelope.Candidates[0].Content.Parts[0].Text)

	// Absent fields stay at their zero values: the client tolerates
	// partially-populated provider output.
	var payload struct {
		ProfileSummary           string   `json:"profileSummary"`
		SuggestedCareers         []string `json:"suggestedCareers"`
		IdentifiedGaps           []string `json:"identifiedGaps"`
		ActionPlan               string   `json:"actionPlan"`
		CurrentSituationAnalysis string   `json:"currentSituationAnalysis"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}

	if payload.SuggestedCareers == nil {
		payload.SuggestedCareers = []string{}
	}
	if payload.IdentifiedGaps == nil {
		payload.IdentifiedGaps = []string{}
	}

	return &session.Analysis{
		ProfileSummary:           payload.ProfileSummary,
		SuggestedCareers:         payload.SuggestedCareers,
		IdentifiedGaps:           payload.IdentifiedGaps,
		ActionPlan:               payload.ActionPlan,
		CurrentSituationAnalysis: payload.CurrentSituationAnalysis,
		GeneratedAt:              time.Now(),
	}, nil
}

// cleanJSONContent removes markdown code fences the model sometimes wraps
// around its JSON output
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}

// sleep waits for the given duration unless the context is cancelled first
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
