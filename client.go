package tribridrag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Version is the current client version
const Version = "1.0.0"

// maxResponseBytes caps how much of a backend response is read.
const maxResponseBytes = 8 << 20

// Client talks to the TriBridRAG backend API.
// All methods are safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	baseURL    *url.URL
}

// NewClient creates a new backend API client.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimRight(config.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		baseURL:    base,
	}, nil
}

// Query sends a question to the backend and returns the fused answer.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*Answer, error) {
	if req.Question == "" {
		return nil, &APIError{Op: "query", Err: fmt.Errorf("%w: Question is required", ErrInvalidConfig)}
	}

	payload := map[string]any{
		"question": req.Question,
	}
	if req.SessionID != "" {
		payload["session_id"] = req.SessionID
	}
	if req.TopK > 0 {
		payload["top_k"] = req.TopK
	}
	if len(req.Knobs) > 0 {
		payload["knobs"] = req.Knobs
	}

	body, err := c.do(ctx, "query", http.MethodPost, "/v1/query", payload)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, &APIError{Op: "query", Err: ErrBadResponse}
	}
	root := gjson.ParseBytes(body)

	answer := &Answer{
		Text:      root.Get("answer.text").String(),
		SessionID: root.Get("session_id").String(),
		Usage: Usage{
			InputTokens:  int(root.Get("usage.input_tokens").Int()),
			OutputTokens: int(root.Get("usage.output_tokens").Int()),
		},
	}
	if answer.Text == "" {
		return nil, &APIError{Op: "query", Err: fmt.Errorf("%w: missing answer.text", ErrBadResponse)}
	}

	root.Get("passages").ForEach(func(_, p gjson.Result) bool {
		answer.Passages = append(answer.Passages, Passage{
			Source:    p.Get("source").String(),
			Snippet:   p.Get("snippet").String(),
			Score:     p.Get("score").Float(),
			Retriever: Retriever(p.Get("retriever").String()),
		})
		return true
	})

	return answer, nil
}

// Neighborhood returns the subgraph around a seed entity.
func (c *Client) Neighborhood(ctx context.Context, req NeighborhoodRequest) (*Neighborhood, error) {
	if req.Seed == "" {
		return nil, &APIError{Op: "neighborhood", Err: fmt.Errorf("%w: Seed is required", ErrInvalidConfig)}
	}
	depth := req.Depth
	if depth <= 0 {
		depth = 1
	}

	path := "/v1/graph/neighborhood?seed=" + url.QueryEscape(req.Seed) + "&depth=" + strconv.Itoa(depth)
	body, err := c.do(ctx, "neighborhood", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, &APIError{Op: "neighborhood", Err: ErrBadResponse}
	}
	root := gjson.ParseBytes(body)

	n := &Neighborhood{Seed: req.Seed}
	root.Get("nodes").ForEach(func(_, v gjson.Result) bool {
		n.Nodes = append(n.Nodes, Node{
			ID:    v.Get("id").String(),
			Label: v.Get("label").String(),
			Kind:  v.Get("kind").String(),
		})
		return true
	})
	root.Get("edges").ForEach(func(_, v gjson.Result) bool {
		n.Edges = append(n.Edges, Edge{
			From:     v.Get("from").String(),
			To:       v.Get("to").String(),
			Relation: v.Get("relation").String(),
			Weight:   v.Get("weight").Float(),
		})
		return true
	})

	return n, nil
}

// Health returns the backend health report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	body, err := c.do(ctx, "health", http.MethodGet, "/v1/health", nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, &APIError{Op: "health", Err: ErrBadResponse}
	}
	root := gjson.ParseBytes(body)

	h := &Health{
		Status:  root.Get("status").String(),
		Version: root.Get("version").String(),
	}
	root.Get("retrievers").ForEach(func(_, v gjson.Result) bool {
		h.Retrievers = append(h.Retrievers, RetrieverStatus{
			Name:  Retriever(v.Get("name").String()),
			Ready: v.Get("ready").Bool(),
		})
		return true
	})

	return h, nil
}

// do performs one backend request and returns the response body.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &APIError{Op: op, Err: err}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reqBody)
	if err != nil {
		return nil, &APIError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &APIError{Op: op, Status: resp.StatusCode, Err: ErrUnauthorized}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &APIError{Op: op, Status: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode >= 500:
		return nil, &APIError{Op: op, Status: resp.StatusCode, Err: ErrBackendUnavailable}
	case resp.StatusCode != http.StatusOK:
		return nil, &APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}

	return body, nil
}
