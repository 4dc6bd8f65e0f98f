// internal/planner/validation/validator.go

// Package validation checks generated plans in two stages: Stage 1 is
// structural (the raw model reply must parse into the plan schema), Stage 2
// is semantic (the Gantt graph must be referentially intact, acyclic, and
// date-consistent). Both stages are pure; they classify input, never mutate it.
package validation

import (
	"planflow/internal/common/logger"
	"planflow/internal/models"
)

type Validator struct {
	logger logger.Logger
}

func New(log logger.Logger) *Validator {
	return &Validator{
		logger: log.With(map[string]interface{}{
			"component": "plan-validator",
		}),
	}
}

// Validate runs both stages in order. Used by callers that already hold a
// raw reply and only care about the final verdict.
func (v *Validator) Validate(raw string) (*models.ProjectPlan, error) {
	plan, err := v.Stage1(raw)
	if err != nil {
		return nil, err
	}
	if err := v.Stage2(plan); err != nil {
		return nil, err
	}
	return plan, nil
}
