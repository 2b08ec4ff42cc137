package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

// SubscriberResponse is the public view of a subscriber.
type SubscriberResponse struct {
	ID           uuid.UUID `json:"id"            example:"123e4567-e89b-12d3-a456-426614174000"`
	Email        string    `json:"email"         example:"ursula_le_guin@gmail.com"`
	Name         string    `json:"name"          example:"Ursula Le Guin"`
	Status       string    `json:"status"        example:"pending_confirmation"`
	SubscribedAt time.Time `json:"subscribed_at" example:"2024-01-15T10:30:00Z"`
} // @name SubscriberResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"\"a/b\" is not a valid subscriber name."`
} // @name ErrorResponse

func toResponse(s *models.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:           s.ID,
		Email:        s.Email.String(),
		Name:         s.Name.String(),
		Status:       string(s.Status),
		SubscribedAt: s.SubscribedAt,
	}
}
