package models

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	subdomain "github.com/ghuser/newsletter/services/subscription/domain"
)

// maxSubscriberNameGraphemes is measured in extended grapheme clusters,
// not bytes or runes.
const maxSubscriberNameGraphemes = 256

// forbiddenNameRunes are rejected anywhere in a subscriber name.
const forbiddenNameRunes = `/()"<>\{}`

// NameRejection is a bit set of the checks a subscriber name failed.
type NameRejection uint8

const (
	// ReasonEmpty: the name is empty or only whitespace.
	ReasonEmpty NameRejection = 1 << iota
	// ReasonTooLong: the name has more than 256 grapheme clusters.
	ReasonTooLong
	// ReasonForbiddenCharacter: the name contains one of / ( ) " < > \ { }.
	ReasonForbiddenCharacter
)

// Has reports whether r includes reason.
func (r NameRejection) Has(reason NameRejection) bool {
	return r&reason != 0
}

func (r NameRejection) String() string {
	var parts []string
	if r.Has(ReasonEmpty) {
		parts = append(parts, "empty")
	}
	if r.Has(ReasonTooLong) {
		parts = append(parts, "too long")
	}
	if r.Has(ReasonForbiddenCharacter) {
		parts = append(parts, "forbidden character")
	}
	return strings.Join(parts, ", ")
}

// InvalidSubscriberNameError carries the rejected input and every check it failed.
// It matches domain.ErrInvalidSubscriberName with errors.Is.
type InvalidSubscriberNameError struct {
	Value   string
	Reasons NameRejection
	// Forbidden is the first forbidden rune found; zero when none.
	Forbidden rune
}

func (e *InvalidSubscriberNameError) Error() string {
	return fmt.Sprintf("%q is not a valid subscriber name.", e.Value)
}

func (e *InvalidSubscriberNameError) Unwrap() error {
	return subdomain.ErrInvalidSubscriberName
}

// SubscriberName is a value object for a validated subscriber display name.
//
// A SubscriberName obtained from ParseSubscriberName is non-blank, at most
// 256 grapheme clusters long and free of / ( ) " < > \ { }. The zero value is
// not a valid name.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates raw and wraps it verbatim. Trimming is only
// used for the emptiness check; the stored value keeps surrounding whitespace.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	var reasons NameRejection

	if strings.TrimSpace(raw) == "" {
		reasons |= ReasonEmpty
	}
	if uniseg.GraphemeClusterCount(raw) > maxSubscriberNameGraphemes {
		reasons |= ReasonTooLong
	}
	forbidden := firstForbiddenRune(raw)
	if forbidden != 0 {
		reasons |= ReasonForbiddenCharacter
	}

	if reasons != 0 {
		return SubscriberName{}, &InvalidSubscriberNameError{
			Value:     raw,
			Reasons:   reasons,
			Forbidden: forbidden,
		}
	}
	return SubscriberName{value: raw}, nil
}

// MustParseSubscriberName is like ParseSubscriberName but panics on invalid input.
// Intended for tests and fixtures.
func MustParseSubscriberName(raw string) SubscriberName {
	n, err := ParseSubscriberName(raw)
	if err != nil {
		panic(err)
	}
	return n
}

func firstForbiddenRune(s string) rune {
	for _, r := range s {
		if strings.ContainsRune(forbiddenNameRunes, r) {
			return r
		}
	}
	return 0
}

// String returns the underlying name. Safe to call any number of times.
func (n SubscriberName) String() string {
	return n.value
}

// IsZero reports whether n was never parsed or has been consumed by Inner.
func (n SubscriberName) IsZero() bool {
	return n.value == ""
}

// Inner hands the raw text to the caller and resets n to the zero value.
// The wrapper must not be used afterwards.
func (n *SubscriberName) Inner() string {
	v := n.value
	n.value = ""
	return v
}

// InnerMut exposes the underlying string for in-place modification.
//
// Writes through the returned pointer bypass validation: after a write the
// value is no longer guaranteed to satisfy the SubscriberName rules.
func (n *SubscriberName) InnerMut() *string {
	return &n.value
}
