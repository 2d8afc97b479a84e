package factory

import (
	"fmt"

	"ai-chat-be/internal/constant"
	"ai-chat-be/pkg/genai"
	"ai-chat-be/pkg/genai/gemini"
	"ai-chat-be/pkg/genai/openai"
)

// NewClient selects the generation backend once at startup. Missing
// credentials for a live provider are a construction-time error, never a
// call-time surprise.
func NewClient(providerType, openAIKey, openAIBaseURL, openAIModel, geminiKey, geminiModel string) (genai.Client, error) {
	switch providerType {
	case "mock", "":
		return genai.NewMockClient(constant.MockReplyText), nil
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY must be set when using the openai provider")
		}
		if openAIModel == "" {
			openAIModel = "gpt-3.5-turbo"
		}
		return openai.NewOpenAIProvider(openAIKey, openAIBaseURL, openAIModel), nil
	case "gemini":
		if geminiKey == "" {
			return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY must be set when using the gemini provider")
		}
		if geminiModel == "" {
			geminiModel = "gemini-1.5-flash"
		}
		return gemini.NewGeminiProvider(geminiKey, geminiModel), nil
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s (use 'mock', 'openai' or 'gemini')", providerType)
	}
}
