// internal/planner/sufficiency/models.go
package sufficiency

// chatReply is the structured reply the scoring model is instructed to
// return.
type chatReply struct {
	AssistantReply string `json:"assistantReply"`
	Progress       int    `json:"progress"`
	IsSufficient   bool   `json:"isSufficient"`
}
