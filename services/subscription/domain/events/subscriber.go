package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the subscription context.
const (
	TopicSubscriberCreated     = "subscription.created"
	TopicSubscriptionConfirmed = "subscription.confirmed"
)

// SubscriberCreatedEvent is published in the same transaction that stores a
// new pending subscriber.
type SubscriberCreatedEvent struct {
	EventID          uuid.UUID `json:"event_id"`
	Version          int       `json:"version"`
	SubscriberID     uuid.UUID `json:"subscriber_id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	ConfirmationLink string    `json:"confirmation_link"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// SubscriptionConfirmedEvent is published when a pending subscriber confirms.
type SubscriptionConfirmedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	Version      int       `json:"version"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
