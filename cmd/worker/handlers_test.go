package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/newsletter/pkg/events"
	"github.com/ghuser/newsletter/pkg/logger"
	domainevents "github.com/ghuser/newsletter/services/subscription/domain/events"
)

type recordingWarmer struct {
	ids []uuid.UUID
	err error
}

func (w *recordingWarmer) WarmCache(_ context.Context, id uuid.UUID) error {
	w.ids = append(w.ids, id)
	return w.err
}

const testToken = "QWERTYUIOPASDFGHJKLZXCVBNM234567"

func createdMessage(t *testing.T, id uuid.UUID) *domainevents.SubscriberCreatedEvent {
	t.Helper()
	return &domainevents.SubscriberCreatedEvent{
		EventID:          uuid.New(),
		Version:          1,
		SubscriberID:     id,
		Email:            "ursula@domain.com",
		Name:             "Ursula Le Guin",
		ConfirmationLink: "http://localhost:8080/subscriptions/confirm?subscription_token=" + testToken,
		OccurredAt:       time.Now().UTC(),
	}
}

func TestHandleSubscriberCreated(t *testing.T) {
	id := uuid.New()
	msg, err := events.NewJSONMessage(createdMessage(t, id))
	if err != nil {
		t.Fatalf("message: %v", err)
	}

	var buf bytes.Buffer
	warmer := &recordingWarmer{}
	var started []uuid.UUID
	start := func(_ context.Context, sid uuid.UUID) error {
		started = append(started, sid)
		return nil
	}

	h := handleSubscriberCreated(warmer, start, logger.NewWithWriter(&buf, "info"))
	if err := h(context.Background(), msg); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(warmer.ids) != 1 || warmer.ids[0] != id {
		t.Fatalf("expected cache warm for %s, got %v", id, warmer.ids)
	}
	if len(started) != 1 || started[0] != id {
		t.Fatalf("expected expiry workflow for %s, got %v", id, started)
	}
	if !strings.Contains(buf.String(), "confirmation link issued") {
		t.Fatalf("expected confirmation link log, got %s", buf.String())
	}
	if strings.Contains(buf.String(), testToken) {
		t.Fatalf("confirmation token leaked into log: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "subscription_token=REDACTED") {
		t.Fatalf("expected masked link in log, got %s", buf.String())
	}
}

func TestRedactLink(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://localhost:8080/subscriptions/confirm?subscription_token=" + testToken,
			"http://localhost:8080/subscriptions/confirm?subscription_token=REDACTED"},
		{"https://news.example.com/subscriptions/confirm", "https://news.example.com/subscriptions/confirm"},
		{"http://[::1", "[REDACTED]"},
	}
	for _, tt := range tests {
		if got := redactLink(tt.in); got != tt.want {
			t.Errorf("redactLink(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHandleSubscriberCreated_WithoutTemporal(t *testing.T) {
	msg, _ := events.NewJSONMessage(createdMessage(t, uuid.New()))
	h := handleSubscriberCreated(&recordingWarmer{}, nil, logger.Discard())
	if err := h(context.Background(), msg); err != nil {
		t.Fatalf("handler: %v", err)
	}
}

func TestHandleSubscriberCreated_CacheFailureIsNotFatal(t *testing.T) {
	msg, _ := events.NewJSONMessage(createdMessage(t, uuid.New()))
	h := handleSubscriberCreated(&recordingWarmer{err: errors.New("redis down")}, nil, logger.Discard())
	if err := h(context.Background(), msg); err != nil {
		t.Fatalf("cache failure must not fail the handler, got %v", err)
	}
}

func TestHandleSubscriberCreated_ExpiryFailureRetries(t *testing.T) {
	msg, _ := events.NewJSONMessage(createdMessage(t, uuid.New()))
	boom := errors.New("temporal down")
	start := func(context.Context, uuid.UUID) error { return boom }
	h := handleSubscriberCreated(&recordingWarmer{}, start, logger.Discard())
	if err := h(context.Background(), msg); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped temporal error, got %v", err)
	}
}

func TestHandleSubscriberCreated_MalformedPayload(t *testing.T) {
	msg, _ := events.NewJSONMessage("x")
	msg.Payload = []byte("{")
	h := handleSubscriberCreated(&recordingWarmer{}, nil, logger.Discard())
	if err := h(context.Background(), msg); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestHandleSubscriptionConfirmed(t *testing.T) {
	id := uuid.New()
	msg, _ := events.NewJSONMessage(domainevents.SubscriptionConfirmedEvent{
		EventID:      uuid.New(),
		Version:      1,
		SubscriberID: id,
		OccurredAt:   time.Now().UTC(),
	})
	warmer := &recordingWarmer{}
	if err := handleSubscriptionConfirmed(warmer, logger.Discard())(context.Background(), msg); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(warmer.ids) != 1 || warmer.ids[0] != id {
		t.Fatalf("expected cache refresh for %s, got %v", id, warmer.ids)
	}
}
