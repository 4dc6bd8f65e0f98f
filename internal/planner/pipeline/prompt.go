// internal/planner/pipeline/prompt.go
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"planflow/internal/models"
)

// buildPlanPrompt renders the generation instructions plus the full
// transcript. The model must synthesize the whole conversation, honor later
// corrections over earlier statements, and emit the plan JSON with nothing
// around it.
func buildPlanPrompt(now time.Time, transcript models.Transcript) string {
	var parts []string

	parts = append(parts, "You are a world-class project planning AI. Your sole task is to generate a single JSON object based on the provided conversation.")
	parts = append(parts, fmt.Sprintf("Current date: %s. Calculate all dates relative to this date.", now.Format("January 2, 2006")))
	parts = append(parts, "")
	parts = append(parts, "Read the complete conversation below, from the beginning to the end. If the user corrects or changes their mind, use the most recent information. Incorporate every specific detail mentioned: timeline, team size, features, technology preferences, constraints.")
	parts = append(parts, "")
	parts = append(parts, `If the conversation does not describe a plannable project (e.g. just greetings or gibberish), return ONLY: {"error": "Invalid input. Please provide a clear project goal, timeline, and key features first."}`)
	parts = append(parts, "")
	parts = append(parts, "Otherwise return ONLY a valid JSON object with this EXACT structure:")
	parts = append(parts, planShapeExample)
	parts = append(parts, "")
	parts = append(parts, "Rules:")
	parts = append(parts, "- projectName: short, professional, reflecting the final project idea")
	parts = append(parts, "- executiveSummary: 2-3 sentences covering goal, timeline and scope")
	parts = append(parts, "- keyMilestones: 3-5 major checkpoints")
	parts = append(parts, "- technologyStack: 3-5 entries with component, technology and rationale")
	parts = append(parts, "- resourceSuggestions: required roles inferred from goal, timeline and team size")
	parts = append(parts, "- ganttData.data: 5-10 tasks, sequential ids from 1, start_date as YYYY-MM-DD, duration in whole days, progress 0, owner a role name or \"Unassigned\"")
	parts = append(parts, `- ganttData.links: logical dependencies; type "0" means finish-to-start; no task may depend on itself and the dependency graph must have no cycles`)
	parts = append(parts, "- a task must not start before every finish-to-start predecessor has finished")
	parts = append(parts, "- no markdown, no code blocks, no extra text")
	parts = append(parts, "")
	parts = append(parts, "Conversation:")
	parts = append(parts, renderTranscript(transcript))

	return strings.Join(parts, "\n")
}

const planShapeExample = `{
  "projectName": "Portfolio Website Build",
  "executiveSummary": "...",
  "keyMilestones": ["...", "..."],
  "technologyStack": [{"component": "Frontend", "technology": "React", "rationale": "..."}],
  "resourceSuggestions": ["1x Frontend Developer"],
  "ganttData": {
    "data": [{"id": 1, "text": "Task Name", "start_date": "2026-01-15", "duration": 5, "progress": 0, "owner": "Unassigned"}],
    "links": [{"id": 1, "source": 1, "target": 2, "type": "0"}]
  }
}`

func renderTranscript(transcript models.Transcript) string {
	if len(transcript) == 0 {
		return "(no messages)"
	}
	var parts []string
	for _, turn := range transcript {
		parts = append(parts, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}
	return strings.Join(parts, "\n")
}
