// internal/planner/validation/stage1.go
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"planflow/internal/common/errors"
	"planflow/internal/models"
)

// Stage1 parses a raw model reply into a ProjectPlan and checks structural
// conformance: required fields present and non-empty, numeric fields typed
// and in range. The offending field paths are carried in the error details.
func (v *Validator) Stage1(raw string) (*models.ProjectPlan, error) {
	docJSON, err := extractJSON(raw)
	if err != nil {
		return nil, errors.NewSchemaError(err.Error())
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return nil, errors.NewSchemaError(fmt.Sprintf("reply is not a JSON object: %v", err))
	}

	// Models signal an unplannable conversation with {"error": "..."}.
	// Treat that as a structural rejection, not a plan.
	if msg, ok := doc["error"].(string); ok {
		return nil, errors.NewSchemaError("model declined: " + msg)
	}

	schemaLoader := gojsonschema.NewGoLoader(planSchema())
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errors.NewSchemaError(fmt.Sprintf("schema evaluation: %v", err))
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = fmt.Sprintf("%s: %s", desc.Field(), desc.Description())
		}
		return nil, errors.NewSchemaError(strings.Join(errs, "; "))
	}

	var plan models.ProjectPlan
	if err := json.Unmarshal([]byte(docJSON), &plan); err != nil {
		return nil, errors.NewSchemaError(fmt.Sprintf("decode plan: %v", err))
	}

	return &plan, nil
}

// extractJSON tolerates markdown code fences and prose around the object;
// smaller models ignore the JSON-only instruction often enough that rejecting
// fenced replies outright would waste a tier.
func extractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty reply")
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object in reply")
	}
	return s[start : end+1], nil
}

// planSchema is the structural contract for a generated plan. Field names and
// the Gantt wire format follow the dashboard widget's expectations.
func planSchema() map[string]interface{} {
	nonEmptyString := map[string]interface{}{
		"type":      "string",
		"minLength": 1,
	}

	task := map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"id", "text", "start_date", "duration", "progress", "owner"},
		"properties": map[string]interface{}{
			"id":         map[string]interface{}{"type": "integer", "minimum": 1},
			"text":       nonEmptyString,
			"start_date": map[string]interface{}{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
			"duration":   map[string]interface{}{"type": "integer", "minimum": 1},
			"progress":   map[string]interface{}{"type": "number", "minimum": 0, "maximum": 1},
			"owner":      nonEmptyString,
		},
	}

	link := map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"id", "source", "target", "type"},
		"properties": map[string]interface{}{
			"id":     map[string]interface{}{"type": "integer", "minimum": 1},
			"source": map[string]interface{}{"type": "integer", "minimum": 1},
			"target": map[string]interface{}{"type": "integer", "minimum": 1},
			"type": map[string]interface{}{
				"type": "string",
				"enum": []interface{}{models.LinkFinishToStart, models.LinkStartToStart, models.LinkFinishToFinish, models.LinkStartToFinish},
			},
		},
	}

	techItem := map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"component", "technology", "rationale"},
		"properties": map[string]interface{}{
			"component":  nonEmptyString,
			"technology": nonEmptyString,
			"rationale":  nonEmptyString,
		},
	}

	return map[string]interface{}{
		"type": "object",
		"required": []interface{}{
			"projectName", "executiveSummary", "keyMilestones",
			"technologyStack", "resourceSuggestions", "ganttData",
		},
		"properties": map[string]interface{}{
			"projectName":      nonEmptyString,
			"executiveSummary": nonEmptyString,
			"keyMilestones": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items":    nonEmptyString,
			},
			"technologyStack": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items":    techItem,
			},
			"resourceSuggestions": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items":    nonEmptyString,
			},
			"ganttData": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"data", "links"},
				"properties": map[string]interface{}{
					"data": map[string]interface{}{
						"type":     "array",
						"minItems": 1,
						"items":    task,
					},
					"links": map[string]interface{}{
						"type":  "array",
						"items": link,
					},
				},
			},
		},
	}
}
