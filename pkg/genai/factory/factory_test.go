// FILE: pkg/genai/factory/factory_test.go
package factory

import (
	"context"
	"testing"

	"ai-chat-be/internal/constant"
	"ai-chat-be/pkg/genai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaultsToMock(t *testing.T) {
	client, err := NewClient("", "", "", "", "", "")
	require.NoError(t, err)

	mock, ok := client.(*genai.MockClient)
	require.True(t, ok, "empty provider must yield the mock client")

	reply, err := mock.Generate(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, constant.MockReplyText, reply)
}

func TestNewClientExplicitMock(t *testing.T) {
	client, err := NewClient("mock", "", "", "", "", "")
	require.NoError(t, err)
	_, ok := client.(*genai.MockClient)
	assert.True(t, ok)
}

func TestNewClientOpenAIRequiresKey(t *testing.T) {
	_, err := NewClient("openai", "", "", "", "", "")
	assert.Error(t, err)
}

func TestNewClientGeminiRequiresKey(t *testing.T) {
	_, err := NewClient("gemini", "", "", "", "", "")
	assert.Error(t, err)
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient("vertex-magic", "", "", "", "", "")
	assert.Error(t, err)
}
