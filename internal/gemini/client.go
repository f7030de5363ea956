// Package gemini provides the generative backend for Sofre: recipe
// authorship, dish photography, photo understanding, and quantity
// arithmetic, all over the Gemini REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/sofre/internal/logger"
)

// ── Wire types ───────────────────────────────────────────────────

// Part is a polymorphic content block (text or inline image data).
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// TextPart is a convenience constructor for a plain-text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// ImagePart is a convenience constructor for an inline image part.
func ImagePart(data []byte, mimeType string) Part {
	return Part{InlineData: &InlineData{MimeType: mimeType, Data: data}}
}

// InlineData carries base64-encoded media bytes.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// Schema is a response schema constraining structured replies.
type Schema struct {
	Type       string             `json:"type"`
	Items      *Schema            `json:"items,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// generationConfig is the per-request generation settings block.
type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

// generatePayload is the request body for the generateContent endpoint.
type generatePayload struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []Part `json:"parts"`
}

// generateResponse is the top-level generateContent envelope.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// predictPayload is the request body for the image-model predict endpoint.
type predictPayload struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount  int    `json:"sampleCount"`
	AspectRatio  string `json:"aspectRatio,omitempty"`
	OutputFormat string `json:"outputMimeType,omitempty"`
}

// predictResponse is the top-level predict envelope.
type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// ── Client ───────────────────────────────────────────────────────

// Defaults for the two model endpoints.
const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel      = "gemini-2.5-flash"
	defaultImageModel = "imagen-3.0-generate-002"
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel overrides the default text model name.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithImageModel overrides the default image model name.
func WithImageModel(model string) ClientOption {
	return func(c *Client) { c.imageModel = model }
}

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// Client talks to the Gemini generateContent and predict endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	imageModel string
	http       *http.Client
	log        *logger.Logger
}

// NewClient creates a Gemini client with a 60 second request timeout.
// Generation calls routinely take tens of seconds.
func NewClient(apiKey string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      defaultModel,
		imageModel: defaultImageModel,
		http:       &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Generate sends the parts to the text model and returns the reply text.
// When schema is non-nil the model is constrained to JSON matching it.
func (c *Client) Generate(ctx context.Context, parts []Part, schema *Schema) (string, error) {
	body := generatePayload{Contents: []content{{Parts: parts}}}
	if schema != nil {
		body.GenerationConfig = &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	raw, err := c.post(ctx, url, body)
	if err != nil {
		return "", err
	}

	var result generateResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("gemini: unmarshal response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response (no candidates)")
	}

	reply := result.Candidates[0].Content.Parts[0].Text
	c.log.Debug("gemini: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}

// Predict sends a prompt to the image model and returns the base64 image
// bytes and their MIME type.
func (c *Client) Predict(ctx context.Context, prompt string) (string, string, error) {
	body := predictPayload{
		Instances: []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{
			SampleCount: 1,
			AspectRatio: "1:1",
		},
	}

	url := fmt.Sprintf("%s/models/%s:predict", c.baseURL, c.imageModel)
	raw, err := c.post(ctx, url, body)
	if err != nil {
		return "", "", err
	}

	var result predictResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", "", fmt.Errorf("gemini: unmarshal predict response: %w", err)
	}
	if len(result.Predictions) == 0 || result.Predictions[0].BytesBase64Encoded == "" {
		return "", "", fmt.Errorf("gemini: empty predict response")
	}

	p := result.Predictions[0]
	mime := p.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return p.BytesBase64Encoded, mime, nil
}

// post performs one JSON request/response round trip.
func (c *Client) post(ctx context.Context, url string, body any) ([]byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.log.Debug("gemini: POST %s (%d bytes)", url, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini: API %s\n%s", resp.Status, string(respBody))
	}
	return respBody, nil
}

// stripCodeFence removes a wrapping markdown code fence from a reply.
// Models occasionally fence JSON even under a response schema.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
