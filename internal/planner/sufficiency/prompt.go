// internal/planner/sufficiency/prompt.go
package sufficiency

import (
	"fmt"
	"strings"
	"time"

	"planflow/internal/models"
)

// buildChatPrompt renders the scoring instructions plus the full transcript
// into a single prompt. The rubric asks for one question at a time, with
// concrete examples, and a strict JSON-only reply.
func buildChatPrompt(now time.Time, transcript models.Transcript) string {
	var parts []string

	parts = append(parts, "You are 'PlanFlow', an AI project planner.")
	parts = append(parts, fmt.Sprintf("Current date: %s", now.Format("January 2, 2006")))
	parts = append(parts, "")
	parts = append(parts, "Your goal is to gather 4 key pieces of information: Goal, Timeline, Features, Team Size.")
	parts = append(parts, "Rules:")
	parts = append(parts, "- Ask only ONE question at a time.")
	parts = append(parts, "- When you ask a question, ALWAYS include 2-3 brief concrete examples in parentheses, e.g. 'What's your timeline? (e.g., 2 months, 6 months, 1 year)'.")
	parts = append(parts, "- Ask the single most valuable question for the weakest-covered item.")
	parts = append(parts, "- If the latest user message is only a greeting or clearly not a project description, reply politely, set progress to 0 and isSufficient to false.")
	parts = append(parts, "")
	parts = append(parts, "Estimate progress as a percentage: 0 = nothing, 25 = goal known, 50 = goal + timeline, 75 = goal + timeline + team, 100 = all four items known.")
	parts = append(parts, "If later messages retract or change earlier information, re-score against the latest settled facts, even if that lowers progress.")
	parts = append(parts, "When progress reaches 100, stop asking and give a short concluding statement; isSufficient must be true only at 100.")
	parts = append(parts, "")
	parts = append(parts, `Return ONLY a valid JSON object: {"assistantReply": "...", "progress": 0, "isSufficient": false}`)
	parts = append(parts, "No markdown, no code blocks, no extra text.")
	parts = append(parts, "")
	parts = append(parts, "Conversation so far:")
	parts = append(parts, renderTranscript(transcript))

	return strings.Join(parts, "\n")
}

func renderTranscript(transcript models.Transcript) string {
	if len(transcript) == 0 {
		return "(no messages yet)"
	}
	var parts []string
	for _, turn := range transcript {
		parts = append(parts, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}
	return strings.Join(parts, "\n")
}
