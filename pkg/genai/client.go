package genai

import "context"

// Client is the single generation capability used by the chat turn flow.
// Variant selection happens once at startup; call-time failures are expected
// to be contained by the caller, never to abort a chat turn.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
