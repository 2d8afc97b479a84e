package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls an external model-serving endpoint that hosts the sentiment
// model. The backend never loads the model in-process.
type Client struct {
	baseURL string
	client  *http.Client
}

type predictRequest struct {
	Inputs string `json:"inputs"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Available reports whether a model server endpoint is configured at all.
func (c *Client) Available() bool {
	return c != nil && c.baseURL != ""
}

// Predict sends the prompt to the model server and returns the raw JSON
// prediction (label/score pairs) untouched.
func (c *Client) Predict(ctx context.Context, prompt string) (json.RawMessage, error) {
	if !c.Available() {
		return nil, fmt.Errorf("sentiment model server is not configured")
	}

	payload, err := json.Marshal(predictRequest{Inputs: prompt})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/predict"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sentiment request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status error, got status %d with response body %s", resp.StatusCode, string(body))
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("model server returned invalid JSON")
	}

	return json.RawMessage(body), nil
}
