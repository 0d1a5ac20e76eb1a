package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "yt-gist/errors"

	"github.com/sirupsen/logrus"
)

// NoResponseMessage is returned when the endpoint answers successfully but
// without any candidates. It is a valid-but-empty outcome, not a failure.
const NoResponseMessage = "No response from Gemini API"

type Config struct {
	BaseURL string // e.g. "https://generativelanguage.googleapis.com"
	Model   string // e.g. "models/gemini-1.5-pro-latest"
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	model      string
	HTTPClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Client{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) Model() string {
	return c.model
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction content   `json:"systemInstruction"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate submits a prompt plus source text to the generateContent endpoint
// and returns the first candidate's text. The instruction body is always the
// prompt, a blank line, then the source text; stored prompt templates assume
// exactly that join. The API key authenticates as a query parameter, which is
// the only mode this endpoint accepts. No retries; the full response is
// buffered.
func (c *Client) Generate(ctx context.Context, prompt, sourceText, apiKey string) (string, error) {
	const op = "GeminiClient.Generate"

	if apiKey == "" {
		return "", apperrors.Unauthorized(op, nil, "API key is not configured")
	}

	reqBody, err := json.Marshal(generateRequest{
		SystemInstruction: content{
			Role:  "model",
			Parts: []part{{Text: ""}},
		},
		Contents: []content{
			{
				Role:  "user",
				Parts: []part{{Text: prompt + "\n\n" + sourceText}},
			},
		},
	})
	if err != nil {
		return "", apperrors.Internal(op, err, "failed to encode request")
	}

	endpoint := fmt.Sprintf("%s/v1beta/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", apperrors.Internal(op, err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", apperrors.Upstream(op, err, "Gemini API call failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Upstream(op, err, "failed to read Gemini API response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("Gemini API returned an error")
		return "", apperrors.Upstream(op, nil,
			fmt.Sprintf("Gemini API returned HTTP %d: %s", resp.StatusCode, body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", apperrors.Upstream(op, err, "failed to decode Gemini API response")
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		logrus.WithField("model", c.model).Warn("Gemini API returned no candidates")
		return NoResponseMessage, nil
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
