// internal/planner/validation/stage1_test.go
package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planflow/internal/common/errors"
	"planflow/internal/common/logger"
)

func validPlanJSON(t *testing.T, mutate func(doc map[string]interface{})) string {
	t.Helper()

	doc := map[string]interface{}{
		"projectName":      "Fitness App Build",
		"executiveSummary": "A mobile fitness app delivered in 3 months.",
		"keyMilestones":    []interface{}{"Design Complete", "Beta Release", "Launch"},
		"technologyStack": []interface{}{
			map[string]interface{}{"component": "Mobile", "technology": "React Native", "rationale": "Cross-platform"},
		},
		"resourceSuggestions": []interface{}{"2x Mobile Developers"},
		"ganttData": map[string]interface{}{
			"data": []interface{}{
				map[string]interface{}{"id": 1, "text": "Design", "start_date": "2026-09-01", "duration": 10, "progress": 0, "owner": "Designer"},
				map[string]interface{}{"id": 2, "text": "Build", "start_date": "2026-09-11", "duration": 30, "progress": 0, "owner": "Developer"},
			},
			"links": []interface{}{
				map[string]interface{}{"id": 1, "source": 1, "target": 2, "type": "0"},
			},
		},
	}

	if mutate != nil {
		mutate(doc)
	}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(raw)
}

func TestStage1_ValidPlan(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	plan, err := v.Stage1(validPlanJSON(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "Fitness App Build", plan.ProjectName)
	assert.Len(t, plan.GanttData.Data, 2)
	assert.Len(t, plan.GanttData.Links, 1)
}

func TestStage1_FencedReply(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	raw := "```json\n" + validPlanJSON(t, nil) + "\n```"
	plan, err := v.Stage1(raw)
	require.NoError(t, err)
	assert.Equal(t, "Fitness App Build", plan.ProjectName)
}

func TestStage1_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		details string
	}{
		{
			name:    "empty reply",
			raw:     "",
			details: "empty reply",
		},
		{
			name:    "no JSON object",
			raw:     "I cannot help with that.",
			details: "no JSON object",
		},
		{
			name:    "model declined",
			raw:     `{"error": "Invalid input. Please provide a clear project goal first."}`,
			details: "model declined",
		},
		{
			name: "missing executive summary",
			raw: validPlanJSON(t, func(doc map[string]interface{}) {
				delete(doc, "executiveSummary")
			}),
			details: "executiveSummary",
		},
		{
			name: "empty project name",
			raw: validPlanJSON(t, func(doc map[string]interface{}) {
				doc["projectName"] = ""
			}),
			details: "projectName",
		},
		{
			name: "zero duration",
			raw: validPlanJSON(t, func(doc map[string]interface{}) {
				gantt := doc["ganttData"].(map[string]interface{})
				task := gantt["data"].([]interface{})[0].(map[string]interface{})
				task["duration"] = 0
			}),
			details: "duration",
		},
		{
			name: "progress out of range",
			raw: validPlanJSON(t, func(doc map[string]interface{}) {
				gantt := doc["ganttData"].(map[string]interface{})
				task := gantt["data"].([]interface{})[0].(map[string]interface{})
				task["progress"] = 1.5
			}),
			details: "progress",
		},
		{
			name: "malformed start date",
			raw: validPlanJSON(t, func(doc map[string]interface{}) {
				gantt := doc["ganttData"].(map[string]interface{})
				task := gantt["data"].([]interface{})[0].(map[string]interface{})
				task["start_date"] = "September 1st"
			}),
			details: "start_date",
		},
		{
			name: "no tasks",
			raw: validPlanJSON(t, func(doc map[string]interface{}) {
				gantt := doc["ganttData"].(map[string]interface{})
				gantt["data"] = []interface{}{}
			}),
			details: "data",
		},
	}

	v := New(logger.NewNoOpLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := v.Stage1(tt.raw)
			require.Error(t, err)
			assert.Nil(t, plan)
			assert.Equal(t, errors.ErrCodeSchemaInvalid, errors.CodeOf(err))

			var se *errors.StandardError
			require.ErrorAs(t, err, &se)
			assert.True(t, strings.Contains(se.Details, tt.details),
				"details %q should mention %q", se.Details, tt.details)
		})
	}
}

func TestStage1_LinkTypeEnum(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	raw := validPlanJSON(t, func(doc map[string]interface{}) {
		gantt := doc["ganttData"].(map[string]interface{})
		link := gantt["links"].([]interface{})[0].(map[string]interface{})
		link["type"] = "finish_to_start"
	})

	_, err := v.Stage1(raw)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSchemaInvalid, errors.CodeOf(err))
}

func TestStage1_DoesNotMutateInput(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	raw := validPlanJSON(t, nil)
	before := raw
	_, err := v.Stage1(raw)
	require.NoError(t, err)
	assert.Equal(t, before, raw)
}

func TestValidate_RunsBothStages(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	// Structurally fine but semantically broken: dangling link target.
	raw := validPlanJSON(t, func(doc map[string]interface{}) {
		gantt := doc["ganttData"].(map[string]interface{})
		link := gantt["links"].([]interface{})[0].(map[string]interface{})
		link["target"] = 3
	})

	plan, err := v.Validate(raw)
	assert.Nil(t, plan)
	assert.Equal(t, errors.ErrCodeSemanticInvalid, errors.CodeOf(err))
}
