package domain

// Chat message roles understood by every text-generation backend.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one role-tagged message of a generation request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationRequest is a single text-generation call.
// An empty Model means the backend's configured default.
type GenerationRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// SystemPrompt returns the concatenated content of all system messages.
func (r GenerationRequest) SystemPrompt() string {
	var out string
	for _, m := range r.Messages {
		if m.Role != RoleSystem {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += m.Content
	}
	return out
}

// Conversation returns the non-system messages in order.
func (r GenerationRequest) Conversation() []ChatMessage {
	out := make([]ChatMessage, 0, len(r.Messages))
	for _, m := range r.Messages {
		if m.Role != RoleSystem {
			out = append(out, m)
		}
	}
	return out
}
