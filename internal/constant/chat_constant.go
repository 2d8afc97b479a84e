package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// SessionTitleMaxLen caps the auto-derived session title taken from the
// first user message.
const SessionTitleMaxLen = 60

const (
	// MockReplyText is returned by the mock generation client when no live
	// provider is configured.
	MockReplyText = "LLM is not configured for local dev. Set CHAT_PROVIDER to 'openai' or 'gemini' to enable responses."

	// GenerationFailureText is the diagnostic assistant reply used when a live
	// provider call fails. The turn still completes with this content.
	GenerationFailureText = "LLM request failed. Configure credentials for the selected provider. Details: "
)

const (
	WSInvalidSessionText = "Invalid or unauthorized chat session."
	WSGenericErrorText   = "Sorry, something went wrong. Your user limit of api usages has been reached or check your API key."
	WSUserNotFoundText   = "Error: user not found or inactive."
)

// IsValidChatRole reports whether role belongs to the closed role set.
func IsValidChatRole(role string) bool {
	switch role {
	case ChatRoleUser, ChatRoleAssistant, ChatRoleSystem:
		return true
	}
	return false
}
