package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

// SubscriberRepository is the persistence interface for the Subscriber aggregate.
// The domain layer owns this interface; infrastructure implements it.
type SubscriberRepository interface {
	// Save stores a new pending subscriber together with its confirmation token
	// and confirmation link. Returns ErrSubscriberAlreadyExists when the email is taken.
	Save(ctx context.Context, s *models.Subscriber, token models.SubscriptionToken, confirmationLink string) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Subscriber, error)

	// GetSubscriberIDByToken resolves a confirmation token.
	// Returns ErrSubscriptionTokenNotFound for unknown tokens.
	GetSubscriberIDByToken(ctx context.Context, token models.SubscriptionToken) (uuid.UUID, error)

	// Confirm marks the subscriber as confirmed.
	Confirm(ctx context.Context, id uuid.UUID) error

	// DeletePending removes the subscriber only while it is still pending.
	// Reports whether a row was deleted.
	DeletePending(ctx context.Context, id uuid.UUID) (bool, error)
}
