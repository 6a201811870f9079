// Package generation talks to the RAG service that answers questions live and
// turns its answers into metric points.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
)

const (
	defaultTimeout = 120 * time.Second
	generatePath   = "/api/generate"
	maxTopK        = 50
)

type Option func(*Client)

type Client struct {
	base url.URL
	http *http.Client
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse generation base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("generation base url %q must be absolute", baseURL)
	}

	c := &Client{
		base: *base,
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func WithHttpClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

type Request struct {
	Question     string `json:"question"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
	TopK         int    `json:"topK,omitempty"`
	Model        string `json:"model,omitempty"`
}

// Source is one retrieved chunk backing an answer.
type Source struct {
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Index   *int    `json:"index,omitempty"`
	Text    *string `json:"text,omitempty"`
	ChunkID *string `json:"chunkId,omitempty"`
}

type Response struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
	// Optional fields some deployments return alongside the answer.
	RunID      string   `json:"runId,omitempty"`
	QuestionID string   `json:"questionId,omitempty"`
	Model      string   `json:"model,omitempty"`
	JudgeScore *float64 `json:"judgeScore,omitempty"`
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return apperr.NewValidation("question is required")
	}
	if r.TopK < 0 || r.TopK > maxTopK {
		return apperr.NewValidation(fmt.Sprintf("topK must be between 0 and %d", maxTopK))
	}
	return nil
}

func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var resp Response
	if err := c.do(ctx, http.MethodPost, generatePath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Sources == nil {
		resp.Sources = []Source{}
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := c.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
