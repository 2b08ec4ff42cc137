package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the lifecycle state of a Subscriber.
type SubscriptionStatus string

const (
	StatusPendingConfirmation SubscriptionStatus = "pending_confirmation"
	StatusConfirmed           SubscriptionStatus = "confirmed"
)

// NewSubscriber is a validated subscription request: both fields have already
// been parsed into value objects.
type NewSubscriber struct {
	Email SubscriberEmail
	Name  SubscriberName
}

// Subscriber is the core aggregate for this bounded context.
type Subscriber struct {
	ID           uuid.UUID
	Email        SubscriberEmail
	Name         SubscriberName
	Status       SubscriptionStatus
	SubscribedAt time.Time
}

// NewSubscriberFromRequest builds a pending Subscriber with a generated ID.
func NewSubscriberFromRequest(req NewSubscriber) *Subscriber {
	return &Subscriber{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		Status:       StatusPendingConfirmation,
		SubscribedAt: time.Now().UTC(),
	}
}

// Confirm marks the subscription as confirmed. Confirming twice is a no-op.
func (s *Subscriber) Confirm() {
	s.Status = StatusConfirmed
}

// IsPending reports whether the subscriber still awaits confirmation.
func (s *Subscriber) IsPending() bool {
	return s.Status == StatusPendingConfirmation
}

// RestoreSubscriber rebuilds a Subscriber from persisted fields without
// re-running value object validation. Only storage adapters should call it.
func RestoreSubscriber(id uuid.UUID, email, name string, status SubscriptionStatus, subscribedAt time.Time) *Subscriber {
	return &Subscriber{
		ID:           id,
		Email:        SubscriberEmail{value: email},
		Name:         SubscriberName{value: name},
		Status:       status,
		SubscribedAt: subscribedAt,
	}
}
