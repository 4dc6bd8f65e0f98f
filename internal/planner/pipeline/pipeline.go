// internal/planner/pipeline/pipeline.go

// Package pipeline orchestrates plan generation across a priority-ordered
// list of model tiers. Tiers are tried sequentially, best first, one attempt
// each; every reply must pass both validation stages to win. If every tier
// fails, the deterministic synthetic generator guarantees a result.
package pipeline

import (
	"context"
	"time"

	"planflow/internal/common/errors"
	"planflow/internal/common/logger"
	"planflow/internal/common/metrics"
	"planflow/internal/common/observability"
	"planflow/internal/llm"
	"planflow/internal/models"
	"planflow/internal/planner/synthetic"
	"planflow/internal/planner/validation"
)

type Pipeline struct {
	tiers     []llm.Tier
	validator *validation.Validator
	synth     *synthetic.Generator
	cooldowns llm.CooldownStore
	obs       *observability.Observability
	logger    logger.Logger
	now       func() time.Time
}

func New(
	tiers []llm.Tier,
	validator *validation.Validator,
	synth *synthetic.Generator,
	cooldowns llm.CooldownStore,
	obs *observability.Observability,
	log logger.Logger,
) *Pipeline {
	if cooldowns == nil {
		cooldowns = llm.NoopCooldown{}
	}
	return &Pipeline{
		tiers:     llm.SortTiers(tiers),
		validator: validator,
		synth:     synth,
		cooldowns: cooldowns,
		obs:       obs,
		logger: log.With(map[string]interface{}{
			"component": "generation-pipeline",
		}),
		now: time.Now,
	}
}

// Generate walks the tier list and returns the first validated plan. Model
// failures and validator rejections advance to the next tier and never reach
// the caller; the only possible error is broken wiring (no tiers and no
// synthesizer), which is a deployment fault.
func (p *Pipeline) Generate(ctx context.Context, transcript models.Transcript) (*models.ProjectPlan, error) {
	started := time.Now()
	prompt := buildPlanPrompt(p.now(), transcript)

	for _, tier := range p.tiers {
		if p.cooldowns.InCooldown(ctx, tier.Name) {
			metrics.TierAttempts.WithLabelValues(tier.Name, metrics.OutcomeCooldown).Inc()
			p.logger.Info("tier in cooldown, skipping", map[string]interface{}{
				"tier": tier.Name,
			})
			continue
		}

		plan, err := p.tryTier(ctx, tier, prompt)
		if err != nil {
			continue
		}

		p.record(ctx, metrics.SourceModel, time.Since(started))
		p.logger.Info("plan generated", map[string]interface{}{
			"tier":        tier.Name,
			"projectName": plan.ProjectName,
		})
		return plan, nil
	}

	if p.synth == nil {
		return nil, errors.NewConfigError("all tiers exhausted and no synthetic generator wired")
	}

	plan := p.synth.Synthesize(transcript)
	p.record(ctx, metrics.SourceSynthetic, time.Since(started))
	p.logger.Warn("all tiers exhausted, returning synthetic plan", map[string]interface{}{
		"projectName": plan.ProjectName,
	})
	return plan, nil
}

// tryTier makes exactly one attempt against one tier. Validation failure is
// tier-terminal: a malformed reply from a model is unlikely to self-correct
// without a different prompt strategy, so the attempt moves to the next tier.
func (p *Pipeline) tryTier(ctx context.Context, tier llm.Tier, prompt string) (*models.ProjectPlan, error) {
	tctx := ctx
	if tier.Timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, tier.Timeout)
		defer cancel()
	}

	raw, err := tier.Client.Invoke(tctx, prompt)
	if err != nil {
		outcome := failureOutcome(err)
		metrics.TierAttempts.WithLabelValues(tier.Name, outcome).Inc()
		p.logger.WithError(err).Warn("tier invocation failed", map[string]interface{}{
			"tier":    tier.Name,
			"outcome": outcome,
		})
		if errors.CodeOf(err) == errors.ErrCodeModelRateLimited {
			p.cooldowns.SetCooldown(ctx, tier.Name, tier.CooldownTTL)
		}
		return nil, err
	}

	plan, err := p.validator.Stage1(raw)
	if err != nil {
		metrics.TierAttempts.WithLabelValues(tier.Name, metrics.OutcomeSchemaInvalid).Inc()
		p.logger.WithError(err).Warn("tier reply failed structural validation", map[string]interface{}{
			"tier": tier.Name,
		})
		return nil, err
	}

	if err := p.validator.Stage2(plan); err != nil {
		metrics.TierAttempts.WithLabelValues(tier.Name, metrics.OutcomeSemanticInvalid).Inc()
		p.logger.WithError(err).Warn("tier reply failed semantic validation", map[string]interface{}{
			"tier": tier.Name,
		})
		return nil, err
	}

	metrics.TierAttempts.WithLabelValues(tier.Name, metrics.OutcomeSuccess).Inc()
	return plan, nil
}

func (p *Pipeline) record(ctx context.Context, source string, elapsed time.Duration) {
	metrics.Generations.WithLabelValues(source).Inc()
	metrics.GenerationDuration.Observe(elapsed.Seconds())
	if p.obs != nil {
		p.obs.RecordPlanGenerated(ctx, source)
		p.obs.RecordPlanDuration(ctx, elapsed, source)
	}
}

func failureOutcome(err error) string {
	switch errors.CodeOf(err) {
	case errors.ErrCodeModelRateLimited:
		return metrics.OutcomeRateLimited
	case errors.ErrCodeModelTimeout:
		return metrics.OutcomeTimeout
	case errors.ErrCodeModelUnavailable:
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeMalformed
	}
}
