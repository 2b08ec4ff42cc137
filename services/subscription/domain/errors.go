package domain

import "errors"

// Sentinel errors for the subscription domain. Use errors.Is() to check these.
var (
	// ErrInvalidSubscriberName indicates the subscriber name violates domain constraints.
	ErrInvalidSubscriberName = errors.New("invalid subscriber name")

	// ErrInvalidSubscriberEmail indicates the email address could not be parsed.
	ErrInvalidSubscriberEmail = errors.New("invalid subscriber email")

	// ErrSubscriberAlreadyExists indicates a subscriber with the same email already exists.
	ErrSubscriberAlreadyExists = errors.New("subscriber already exists")

	// ErrSubscriberNotFound indicates the requested subscriber does not exist.
	ErrSubscriberNotFound = errors.New("subscriber not found")

	// ErrInvalidSubscriptionToken indicates a malformed confirmation token.
	ErrInvalidSubscriptionToken = errors.New("invalid subscription token")

	// ErrSubscriptionTokenNotFound indicates the token is not associated with any subscriber.
	ErrSubscriptionTokenNotFound = errors.New("subscription token not found")
)
