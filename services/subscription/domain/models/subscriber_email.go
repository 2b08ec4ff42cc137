package models

import (
	"fmt"
	"strings"

	pkgvalidator "github.com/ghuser/newsletter/pkg/validator"
	subdomain "github.com/ghuser/newsletter/services/subscription/domain"
)

// SubscriberEmail is a value object holding a syntactically valid email address.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail trims surrounding whitespace and validates the address
// with the shared request validator's email rule.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	s := strings.TrimSpace(raw)
	if err := pkgvalidator.Var(s, "required,email,max=320"); err != nil {
		return SubscriberEmail{}, fmt.Errorf("%w: %q", subdomain.ErrInvalidSubscriberEmail, raw)
	}
	return SubscriberEmail{value: s}, nil
}

// String returns the address.
func (e SubscriberEmail) String() string {
	return e.value
}
