// internal/planner/sufficiency/estimator.go

// Package sufficiency decides whether a planning conversation has gathered
// enough information to generate a report. It delegates scoring to a language
// model, degrades to a deterministic heuristic when the model is unreachable,
// and breaks question loops so the dialogue phase always terminates.
package sufficiency

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"planflow/internal/common/logger"
	"planflow/internal/common/metrics"
	"planflow/internal/llm"
	"planflow/internal/models"
)

type Estimator struct {
	config *Config
	client llm.Client
	logger logger.Logger
	now    func() time.Time
}

func NewEstimator(config *Config, client llm.Client, log logger.Logger) *Estimator {
	return &Estimator{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{
			"component": "sufficiency-estimator",
		}),
		now: time.Now,
	}
}

// Evaluate scores the transcript's completeness against the rubric (goal,
// timeline, scope, team) and proposes the next clarifying question. It is a
// pure function of the transcript: the rolling question window is recomputed
// from the assistant turns on every call, so there is no hidden state.
//
// The score is not monotonic across turns; a message that retracts earlier
// information may lower it.
func (e *Estimator) Evaluate(ctx context.Context, transcript models.Transcript) models.SufficiencyResult {
	reply, mode := e.score(ctx, transcript)

	if reply.Progress < 0 {
		reply.Progress = 0
	}
	if reply.Progress > 100 {
		reply.Progress = 100
	}

	result := models.SufficiencyResult{
		Score:          reply.Progress,
		IsSufficient:   reply.IsSufficient,
		AssistantReply: reply.AssistantReply,
	}
	if !reply.IsSufficient {
		result.NextPrompt = reply.AssistantReply
	}

	// Loop detection: if the proposed question was already asked within the
	// window, stop asking and escalate to generation with what we have.
	if !result.IsSufficient && isQuestion(result.NextPrompt) {
		window := lastQuestions(transcript, e.config.WindowSize)
		if matched, dup := nearDuplicate(result.NextPrompt, window, e.config.SimilarityThreshold); dup {
			e.logger.Warn("question loop detected, forcing sufficiency", map[string]interface{}{
				"question": result.NextPrompt,
				"repeatOf": matched,
			})
			result.IsSufficient = true
			result.NextPrompt = ""
			result.AssistantReply = ""
			mode = metrics.ModeLoopBreak
		}
	}

	metrics.SufficiencyEvaluations.WithLabelValues(mode).Inc()
	return result
}

// score asks the model, falling back to the heuristic on any failure. The
// estimator never surfaces a model error; the dialogue must always continue.
func (e *Estimator) score(ctx context.Context, transcript models.Transcript) (chatReply, string) {
	tctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	raw, err := e.client.Invoke(tctx, buildChatPrompt(e.now(), transcript))
	if err != nil {
		e.logger.WithError(err).Warn("model scoring failed, using heuristic", nil)
		return e.heuristic(transcript), metrics.ModeHeuristic
	}

	var reply chatReply
	if err := json.Unmarshal([]byte(extractObject(raw)), &reply); err != nil {
		e.logger.WithError(err).Warn("unparseable scoring reply, using heuristic", nil)
		return e.heuristic(transcript), metrics.ModeHeuristic
	}
	if strings.TrimSpace(reply.AssistantReply) == "" && !reply.IsSufficient {
		return e.heuristic(transcript), metrics.ModeHeuristic
	}

	return reply, metrics.ModeModel
}

// extractObject tolerates code fences and prose around the JSON object.
func extractObject(raw string) string {
	s := strings.TrimSpace(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}

func isQuestion(s string) bool {
	return strings.Contains(s, "?")
}

// lastQuestions collects up to k of the most recent assistant questions,
// newest first.
func lastQuestions(transcript models.Transcript, k int) []string {
	assistant := transcript.AssistantTurns()
	var out []string
	for i := len(assistant) - 1; i >= 0 && len(out) < k; i-- {
		if isQuestion(assistant[i].Content) {
			out = append(out, assistant[i].Content)
		}
	}
	return out
}
