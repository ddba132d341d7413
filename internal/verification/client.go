// Package verification provides the high-fidelity verification capability and
// the escalation path that invokes it for borderline fast results.
package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/fitscore/internal/prompts"
	"github.com/jonathan/fitscore/internal/types"
)

// Verdict is the corroborating assessment returned by a verifier.
type Verdict struct {
	Score      float64 `json:"corroborated_score"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Verifier is the external high-fidelity verification capability: given
// candidate text, a role, and the fast result, it returns a corroborating
// score and rationale. Implementations may be swapped without touching the
// core pipeline.
type Verifier interface {
	Verify(ctx context.Context, text, role string, fast *types.EvaluationResult) (*Verdict, error)
	Close() error
}

// maxPromptChars truncates candidate text sent to the model; verification
// only needs the head of the profile to corroborate a score.
const maxPromptChars = 2000

// defaultModel balances latency and quality for single-shot corroboration.
const defaultModel = "gemini-2.5-flash-lite"

// GeminiVerifier implements Verifier using Google Gemini.
type GeminiVerifier struct {
	client *genai.Client
	model  string
}

// GeminiOption configures a GeminiVerifier.
type GeminiOption func(*GeminiVerifier)

// WithModel overrides the Gemini model used for verification.
func WithModel(model string) GeminiOption {
	return func(v *GeminiVerifier) {
		if model != "" {
			v.model = model
		}
	}
}

// NewGeminiVerifier creates a Gemini-backed verifier.
func NewGeminiVerifier(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiVerifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	v := &GeminiVerifier{client: client, model: defaultModel}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify asks the model for a corroborating score. The response is requested
// as JSON and parsed into a Verdict with out-of-range values clamped.
func (v *GeminiVerifier) Verify(ctx context.Context, text, role string, fast *types.EvaluationResult) (*Verdict, error) {
	prompt := buildVerifyPrompt(text, role, fast)

	model := v.client.GenerativeModel(v.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("verification call failed: %w", err)
	}

	content, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	return parseVerdict(content)
}

// Close releases resources held by the underlying client.
func (v *GeminiVerifier) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

// buildVerifyPrompt renders the corroboration prompt from the embedded
// template.
func buildVerifyPrompt(text, role string, fast *types.EvaluationResult) string {
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}
	template := prompts.MustGet("verification.json", "corroborate-fast-score")
	return prompts.Format(template, map[string]string{
		"Role":          role,
		"CandidateText": text,
		"Education":     fmt.Sprintf("%.1f", fast.DimensionValue(types.DimensionEducation)),
		"Experience":    fmt.Sprintf("%.1f", fast.DimensionValue(types.DimensionExperience)),
		"Skills":        fmt.Sprintf("%.1f", fast.DimensionValue(types.DimensionSkills)),
		"Achievements":  fmt.Sprintf("%.1f", fast.DimensionValue(types.DimensionAchievements)),
		"Overall":       fmt.Sprintf("%.1f", fast.Overall),
	})
}

// parseVerdict decodes the model response, tolerating markdown code fences,
// and clamps scores into their valid ranges.
func parseVerdict(content string) (*Verdict, error) {
	content = cleanJSONBlock(content)
	var verdict Verdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse verification response: %w (content: %s)", err, content)
	}
	if verdict.Score < types.MinScore {
		verdict.Score = types.MinScore
	}
	if verdict.Score > types.MaxScore {
		verdict.Score = types.MaxScore
	}
	if verdict.Confidence < types.MinConfidence {
		verdict.Confidence = types.MinConfidence
	}
	if verdict.Confidence > types.MaxConfidence {
		verdict.Confidence = types.MaxConfidence
	}
	return &verdict, nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
