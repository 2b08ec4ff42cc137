package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestRequest(t *testing.T) NewSubscriber {
	t.Helper()
	email, err := ParseSubscriberEmail("ursula_le_guin@gmail.com")
	if err != nil {
		t.Fatalf("parse email: %v", err)
	}
	return NewSubscriber{Email: email, Name: MustParseSubscriberName("Ursula Le Guin")}
}

func TestNewSubscriberFromRequest(t *testing.T) {
	req := newTestRequest(t)

	t.Run("returns pending subscriber with non-zero ID", func(t *testing.T) {
		s := NewSubscriberFromRequest(req)
		if s.ID == uuid.Nil {
			t.Fatal("expected non-zero UUID for ID")
		}
		if !s.IsPending() {
			t.Fatalf("expected pending status, got %q", s.Status)
		}
	})

	t.Run("copies email and name", func(t *testing.T) {
		s := NewSubscriberFromRequest(req)
		if s.Email.String() != "ursula_le_guin@gmail.com" {
			t.Fatalf("unexpected email %q", s.Email.String())
		}
		if s.Name.String() != "Ursula Le Guin" {
			t.Fatalf("unexpected name %q", s.Name.String())
		}
	})

	t.Run("sets SubscribedAt to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		s := NewSubscriberFromRequest(req)
		after := time.Now().UTC()
		if s.SubscribedAt.Before(before) || s.SubscribedAt.After(after) {
			t.Fatalf("SubscribedAt %v not between %v and %v", s.SubscribedAt, before, after)
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		if NewSubscriberFromRequest(req).ID == NewSubscriberFromRequest(req).ID {
			t.Fatal("expected unique IDs, got identical")
		}
	})
}

func TestSubscriber_Confirm(t *testing.T) {
	s := NewSubscriberFromRequest(newTestRequest(t))
	s.Confirm()
	if s.Status != StatusConfirmed || s.IsPending() {
		t.Fatalf("expected confirmed, got %q", s.Status)
	}
	s.Confirm()
	if s.Status != StatusConfirmed {
		t.Fatalf("second Confirm changed status to %q", s.Status)
	}
}

func TestRestoreSubscriber(t *testing.T) {
	id := uuid.New()
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	s := RestoreSubscriber(id, "a@b.com", "Ada", StatusConfirmed, at)
	if s.ID != id || s.Email.String() != "a@b.com" || s.Name.String() != "Ada" || s.Status != StatusConfirmed || !s.SubscribedAt.Equal(at) {
		t.Fatalf("unexpected subscriber: %+v", s)
	}
}
