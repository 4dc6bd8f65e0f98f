package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TierAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_tier_attempts_total",
			Help: "Total number of model tier attempts by outcome",
		},
		[]string{"tier", "outcome"},
	)

	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_generations_total",
			Help: "Total number of plans generated, by winning source",
		},
		[]string{"source"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "planner_generation_duration_seconds",
			Help: "End-to-end plan generation duration in seconds",
		},
	)

	SufficiencyEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_sufficiency_evaluations_total",
			Help: "Total sufficiency evaluations, by scoring mode",
		},
		[]string{"mode"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_http_requests_total",
			Help: "Total HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)
)

// Tier attempt outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeRateLimited     = "rate_limited"
	OutcomeTimeout         = "timeout"
	OutcomeUnavailable     = "unavailable"
	OutcomeMalformed       = "malformed_reply"
	OutcomeSchemaInvalid   = "schema_invalid"
	OutcomeSemanticInvalid = "semantic_invalid"
	OutcomeCooldown        = "cooldown_skip"
)

// Generation sources.
const (
	SourceModel     = "model"
	SourceSynthetic = "synthetic"
)

// Sufficiency scoring modes.
const (
	ModeModel     = "model"
	ModeHeuristic = "heuristic"
	ModeLoopBreak = "loop_break"
)
