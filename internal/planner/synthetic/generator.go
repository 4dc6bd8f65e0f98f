// internal/planner/synthetic/generator.go

// Package synthetic produces a deterministic, model-free fallback plan. It is
// the pipeline's availability backstop: its output satisfies both validator
// stages by construction, so generation succeeds even under total provider
// outage.
package synthetic

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"planflow/internal/common/logger"
	"planflow/internal/models"
)

const defaultTimeframeDays = 28

type Generator struct {
	logger logger.Logger
	now    func() time.Time
}

func New(log logger.Logger) *Generator {
	return &Generator{
		logger: log.With(map[string]interface{}{
			"component": "synthetic-generator",
		}),
		now: time.Now,
	}
}

// WithClock overrides the scheduling clock. Tests use it to pin start dates.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Synthesize derives a coarse project category from the transcript and fills
// the matching template, scaling task durations to any timeframe the user
// mentioned. It is a total function: any transcript, including an empty one,
// yields a valid plan.
func (g *Generator) Synthesize(transcript models.Transcript) *models.ProjectPlan {
	text := userText(transcript)
	tpl := pickTemplate(text)
	totalDays := timeframeDays(text)

	g.logger.Info("synthesizing fallback plan", map[string]interface{}{
		"category":  tpl.category,
		"totalDays": totalDays,
	})

	plan := &models.ProjectPlan{
		ProjectName:         tpl.projectName,
		ExecutiveSummary:    fmt.Sprintf(tpl.summaryFormat, totalDays),
		KeyMilestones:       tpl.milestones,
		TechnologyStack:     tpl.stack,
		ResourceSuggestions: tpl.resources,
		GanttData:           g.schedule(tpl, totalDays),
	}
	return plan
}

// schedule lays the template's six phases onto the calendar: planning, then
// design, then parallel frontend/backend builds, converging at testing, then
// launch. Start dates are placed exactly at each finish-to-start
// predecessor's recomputed finish, so Stage 2 ordering holds by construction.
func (g *Generator) schedule(tpl template, totalDays int) models.GanttData {
	// Shares along the critical path (build phases run in parallel) sum to 1.
	shares := []float64{0.10, 0.20, 0.40, 0.40, 0.20, 0.10}

	durations := make([]int, len(shares))
	for i, share := range shares {
		d := int(math.Round(float64(totalDays) * share))
		if d < 1 {
			d = 1
		}
		durations[i] = d
	}

	start := g.now()
	dayAfter := func(t time.Time, days int) time.Time { return t.AddDate(0, 0, days) }

	s1 := start
	s2 := dayAfter(s1, durations[0])
	s3 := dayAfter(s2, durations[1])
	s4 := s3
	s5 := dayAfter(s3, durations[2])
	s6 := dayAfter(s5, durations[4])
	starts := []time.Time{s1, s2, s3, s4, s5, s6}

	tasks := make([]models.GanttTask, len(tpl.taskNames))
	for i, name := range tpl.taskNames {
		tasks[i] = models.GanttTask{
			ID:        i + 1,
			Text:      name,
			StartDate: starts[i].Format(models.DateLayout),
			Duration:  durations[i],
			Progress:  0,
			Owner:     tpl.owners[i],
		}
	}

	links := []models.GanttLink{
		{ID: 1, Source: 1, Target: 2, Type: models.LinkFinishToStart},
		{ID: 2, Source: 2, Target: 3, Type: models.LinkFinishToStart},
		{ID: 3, Source: 2, Target: 4, Type: models.LinkFinishToStart},
		{ID: 4, Source: 3, Target: 5, Type: models.LinkFinishToStart},
		{ID: 5, Source: 4, Target: 5, Type: models.LinkFinishToStart},
		{ID: 6, Source: 5, Target: 6, Type: models.LinkFinishToStart},
	}

	return models.GanttData{Data: tasks, Links: links}
}

func userText(transcript models.Transcript) string {
	var parts []string
	for _, turn := range transcript.UserTurns() {
		parts = append(parts, strings.ToLower(turn.Content))
	}
	return strings.Join(parts, "\n")
}

var timeframePattern = regexp.MustCompile(`(\d+)\s*(day|week|month|year)s?`)

// timeframeDays returns the last timeframe mentioned by the user, in days.
// The last mention wins so later corrections override earlier statements.
func timeframeDays(text string) int {
	matches := timeframePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return defaultTimeframeDays
	}

	last := matches[len(matches)-1]
	n, err := strconv.Atoi(last[1])
	if err != nil || n <= 0 {
		return defaultTimeframeDays
	}

	switch last[2] {
	case "day":
		return n
	case "week":
		return n * 7
	case "month":
		return n * 30
	case "year":
		return n * 365
	}
	return defaultTimeframeDays
}
