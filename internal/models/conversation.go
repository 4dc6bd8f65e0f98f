// internal/models/conversation.go
package models

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in the planning dialogue. The caller owns
// the full history and resends it on every call; nothing is kept server-side.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered dialogue history.
type Transcript []ConversationTurn

// UserTurns returns the user-authored messages in order.
func (t Transcript) UserTurns() []ConversationTurn {
	var out []ConversationTurn
	for _, turn := range t {
		if turn.Role == RoleUser {
			out = append(out, turn)
		}
	}
	return out
}

// AssistantTurns returns the assistant-authored messages in order.
func (t Transcript) AssistantTurns() []ConversationTurn {
	var out []ConversationTurn
	for _, turn := range t {
		if turn.Role == RoleAssistant {
			out = append(out, turn)
		}
	}
	return out
}

// SufficiencyResult is the estimator's judgment of the transcript. Score is
// not monotonic across turns: a later message can invalidate earlier
// assumptions and lower it.
type SufficiencyResult struct {
	Score        int    `json:"score"` // 0..100
	IsSufficient bool   `json:"isSufficient"`
	NextPrompt   string `json:"nextPrompt,omitempty"`

	// AssistantReply is the scorer's conversational text verbatim: the next
	// question while insufficient, a concluding statement once sufficient.
	// Empty when sufficiency was forced rather than judged.
	AssistantReply string `json:"assistantReply,omitempty"`
}
