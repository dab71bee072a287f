package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-3-flash-preview"

	// Document text beyond this point is truncated before prompting.
	maxDocumentChars = 15000
)

// GeminiClient calls the Gemini generateContent API over plain HTTP.
// It implements both Triager and DocumentAnalyzer.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultModel
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

const triagePromptFmt = `You are a building maintenance triage assistant. Classify this maintenance request and return ONLY a valid JSON object (no markdown, no code blocks):

{
  "category": "plumbing|electrical|hvac|structural|appliances|common_area|other",
  "suggested_priority": "low|normal|high|emergency",
  "vendor_type": "plumber|electrician|hvac_tech|general_contractor|building_super|other",
  "summary": "one-sentence triage summary",
  "urgency_reason": "why this priority was suggested"
}

Rules:
- emergency: immediate safety risk (flooding, gas, fire hazard, no heat in winter)
- high: significant disruption or risk of damage if not addressed quickly
- normal: standard maintenance that should be scheduled soon
- low: cosmetic or minor issues with no urgency
- Choose the most specific vendor_type that applies

Maintenance request:
Title: %s
Description: %s
Location: %s`

func (c *GeminiClient) Triage(ctx context.Context, in TriageInput) (*TriageResult, error) {
	prompt := fmt.Sprintf(triagePromptFmt,
		orNone(in.Title), orNone(in.Description), orNone(in.Location))

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai.GeminiClient.Triage: %w", err)
	}

	var result TriageResult
	if err := json.Unmarshal(stripFences(text), &result); err != nil {
		return nil, fmt.Errorf("ai.GeminiClient.Triage: invalid JSON from model: %w", err)
	}
	result.normalize()

	return &result, nil
}

const analyzePromptFmt = `You are a financial data analyst. Analyze the following building/co-op document text and extract key financial data to create interactive charts for residents.

Return ONLY a valid JSON object (no markdown, no code blocks) with this exact schema:
{
  "title": "document title",
  "summary": "plain English summary for residents (2-3 sentences)",
  "highlights": ["key highlight 1", "key highlight 2", "key highlight 3"],
  "charts": [{"type": "pie|bar", "title": "...", "labels": [...], "data": [...], "unit": "$"}]
}

Rules:
- Include 2-4 charts mixing pie and bar types where appropriate
- Extract real numbers from the document
- If no meaningful financial data exists, return at least a summary and highlights with an empty charts array
- All monetary values should be numbers (not strings)

Document text:
%s`

func (c *GeminiClient) Analyze(ctx context.Context, filePath string) (*DocumentAnalysis, error) {
	// Upstream document ingestion stores extracted text alongside the upload;
	// the analyzer reads whatever text lives at the path.
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("ai.GeminiClient.Analyze: read document: %w", err)
	}

	text := string(raw)
	if len(strings.TrimSpace(text)) < 50 {
		return nil, fmt.Errorf("ai.GeminiClient.Analyze: document contains no meaningful text")
	}
	if len(text) > maxDocumentChars {
		text = text[:maxDocumentChars]
	}

	out, err := c.generate(ctx, fmt.Sprintf(analyzePromptFmt, text))
	if err != nil {
		return nil, fmt.Errorf("ai.GeminiClient.Analyze: %w", err)
	}

	var analysis DocumentAnalysis
	if err := json.Unmarshal(stripFences(out), &analysis); err != nil {
		return nil, fmt.Errorf("ai.GeminiClient.Analyze: invalid JSON from model: %w", err)
	}
	if analysis.Summary == "" {
		analysis.Summary = "Document analyzed successfully."
	}
	if analysis.Highlights == nil {
		analysis.Highlights = []string{}
	}
	if analysis.Charts == nil {
		analysis.Charts = []Chart{}
	}

	return &analysis, nil
}

// generateContent wire types, trimmed to the fields used.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model returned status %d: %s", resp.StatusCode, msg)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

var fenceRe = regexp.MustCompile("(?is)^```(?:json)?\\s*|\\s*```$")

// stripFences removes markdown code-block wrappers the model sometimes adds
// despite the prompt.
func stripFences(s string) []byte {
	return []byte(strings.TrimSpace(fenceRe.ReplaceAllString(strings.TrimSpace(s), "")))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
