package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
)

var ErrNoJSON = errors.New("no valid JSON object found in response")

// Client talks to an Ollama-compatible /api/generate endpoint.
type Client struct {
	baseURL string
	model   string
	http    *resty.Client
}

type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type GenerateResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
}

func NewClient(baseURL, model string, http *resty.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    http,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Generate sends a single non-streaming prompt and returns the raw model
// output.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var genResp GenerateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(GenerateRequest{
			Model:  c.model,
			Prompt: prompt,
			Stream: false,
			Format: "json",
		}).
		SetResult(&genResp).
		Post(c.baseURL + "/api/generate")
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("llm returned status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	return genResp.Response, nil
}

var (
	codeFenceOpen  = regexp.MustCompile("(?s)```(?:json)?\\s*")
	codeFenceClose = regexp.MustCompile("(?s)```\\s*$")
)

// ExtractJSON extracts the outermost JSON object from model output that may
// carry markdown fences or surrounding prose.
func ExtractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)
	response = codeFenceOpen.ReplaceAllString(response, "")
	response = codeFenceClose.ReplaceAllString(response, "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}

	jsonStr := response[start : end+1]

	var js json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &js); err != nil {
		return "", fmt.Errorf("extracted text is not valid JSON: %w", err)
	}

	return jsonStr, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
