package models

import (
	"encoding/base32"
	"errors"
	"fmt"

	"github.com/gorilla/securecookie"

	subdomain "github.com/ghuser/newsletter/services/subscription/domain"
)

// subscriptionTokenBytes of entropy encode to exactly 32 base32 characters.
const (
	subscriptionTokenBytes  = 20
	subscriptionTokenLength = 32
)

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// SubscriptionToken is the opaque value emailed to a pending subscriber and
// presented back on /subscriptions/confirm.
type SubscriptionToken string

// NewSubscriptionToken returns a random token of uppercase letters and digits 2-7.
func NewSubscriptionToken() (SubscriptionToken, error) {
	key := securecookie.GenerateRandomKey(subscriptionTokenBytes)
	if key == nil {
		return "", errors.New("generate subscription token: random source failed")
	}
	return SubscriptionToken(tokenEncoding.EncodeToString(key)), nil
}

// ParseSubscriptionToken checks that s has the shape produced by NewSubscriptionToken.
func ParseSubscriptionToken(s string) (SubscriptionToken, error) {
	if len(s) != subscriptionTokenLength {
		return "", fmt.Errorf("%w: expected %d characters", subdomain.ErrInvalidSubscriptionToken, subscriptionTokenLength)
	}
	if _, err := tokenEncoding.DecodeString(s); err != nil {
		return "", fmt.Errorf("%w: %w", subdomain.ErrInvalidSubscriptionToken, err)
	}
	return SubscriptionToken(s), nil
}

// String returns the token text.
func (t SubscriptionToken) String() string {
	return string(t)
}
