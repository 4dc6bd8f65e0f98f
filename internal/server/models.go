// internal/server/models.go
package server

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"planflow/internal/models"
)

// ChatRequest carries the full dialogue history; nothing is kept between
// calls.
type ChatRequest struct {
	Messages []models.ConversationTurn `json:"messages"`
}

func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Messages, validation.Each(validation.By(validateTurn))),
	)
}

func validateTurn(value interface{}) error {
	turn, _ := value.(models.ConversationTurn)
	return validation.ValidateStruct(&turn,
		validation.Field(&turn.Role, validation.Required, validation.In(models.RoleUser, models.RoleAssistant)),
		validation.Field(&turn.Content, validation.Required),
	)
}

// ChatResponse mirrors the dashboard's chat contract.
type ChatResponse struct {
	AssistantReply string `json:"assistantReply"`
	Progress       int    `json:"progress"`
	IsSufficient   bool   `json:"isSufficient"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
