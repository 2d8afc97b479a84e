package genai

import "context"

// MockClient is the provider used when no live backend is configured. It
// always answers with a fixed disclaimer so local dev flows stay functional.
type MockClient struct {
	Reply string
}

var _ Client = &MockClient{}

func NewMockClient(reply string) *MockClient {
	return &MockClient{Reply: reply}
}

func (c *MockClient) Generate(_ context.Context, _ string) (string, error) {
	return c.Reply, nil
}
