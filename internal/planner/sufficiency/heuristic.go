// internal/planner/sufficiency/heuristic.go
package sufficiency

import (
	"regexp"
	"strings"

	"planflow/internal/models"
)

// Rubric questions reused by the deterministic fallback. Each follows the
// one-question-with-examples rule so the dialogue reads the same whichever
// scorer produced it.
const (
	askProject  = "Hello! What project can I help you plan? (e.g., a mobile app, a website, a marketing campaign)"
	askGoal     = "What's the main goal of this project? (e.g., launch a product, grow an audience, automate a workflow)"
	askTimeline = "What's your timeline for this project? (e.g., 2 months, 6 months, 1 year)"
	askFeatures = "What key features or deliverables should it include? (e.g., user accounts, payments, reporting)"
	askTeam     = "How many people will work on this? (e.g., just me, 3 developers, a 6-person team)"
)

// ConcludingReply is surfaced once the transcript is judged sufficient.
const ConcludingReply = "Great, I have all the details I need. Generate the report whenever you're ready."

var (
	timelinePattern = regexp.MustCompile(`\d+\s*(day|week|month|year)s?`)
	teamPattern     = regexp.MustCompile(`\d+\s*(developer|dev|engineer|designer|people|person)`)
	goalPattern     = regexp.MustCompile(`\b(build|create|make|launch|develop|design|ship|automate)\b`)
)

// heuristic derives a score from keyword presence when the scoring model is
// unreachable. Each rubric item is worth 25 points; the dialogue is judged
// sufficient only with all four covered.
func (e *Estimator) heuristic(transcript models.Transcript) chatReply {
	text := strings.ToLower(joinUserTurns(transcript))
	if strings.TrimSpace(text) == "" {
		return chatReply{AssistantReply: askProject, Progress: 0, IsSufficient: false}
	}

	hasGoal := goalPattern.MatchString(text) || len(text) >= 80
	hasTimeline := timelinePattern.MatchString(text)
	hasTeam := teamPattern.MatchString(text) || strings.Contains(text, "team") || strings.Contains(text, "just me") || strings.Contains(text, "solo")
	hasFeatures := strings.Contains(text, "feature") || strings.Count(text, ",") >= 2

	score := 0
	for _, covered := range []bool{hasGoal, hasTimeline, hasTeam, hasFeatures} {
		if covered {
			score += 25
		}
	}

	reply := chatReply{Progress: score, IsSufficient: score == 100}
	switch {
	case reply.IsSufficient:
		reply.AssistantReply = ConcludingReply
	case !hasGoal:
		reply.AssistantReply = askGoal
	case !hasTimeline:
		reply.AssistantReply = askTimeline
	case !hasFeatures:
		reply.AssistantReply = askFeatures
	default:
		reply.AssistantReply = askTeam
	}
	return reply
}

func joinUserTurns(transcript models.Transcript) string {
	var parts []string
	for _, turn := range transcript.UserTurns() {
		parts = append(parts, turn.Content)
	}
	return strings.Join(parts, "\n")
}
