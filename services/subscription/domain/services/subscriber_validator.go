// Package services contains stateless domain services for the subscription
// bounded context. They operate purely on domain types.
package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

// ValidateSubscriberForCreation checks a Subscriber aggregate before it is
// persisted. Value objects are already valid when produced by their parsers;
// this catches aggregates assembled by hand or consumed through
// SubscriberName.Inner.
func ValidateSubscriberForCreation(s *models.Subscriber) error {
	if s == nil {
		return fmt.Errorf("subscriber cannot be nil")
	}
	if s.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}
	if s.Name.IsZero() {
		return fmt.Errorf("name must be set")
	}
	if s.Email.String() == "" {
		return fmt.Errorf("email must be set")
	}
	if s.Status != models.StatusPendingConfirmation {
		return fmt.Errorf("new subscribers must be %s, got %s", models.StatusPendingConfirmation, s.Status)
	}
	return nil
}
