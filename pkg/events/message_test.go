package events

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
)

type samplePayload struct {
	SubscriberID string `json:"subscriber_id"`
	Name         string `json:"name"`
}

func TestNewJSONMessage_DecodeJSON(t *testing.T) {
	in := samplePayload{SubscriberID: "abc", Name: "Ursula Le Guin"}
	msg, err := NewJSONMessage(in)
	if err != nil {
		t.Fatalf("NewJSONMessage: %v", err)
	}
	if msg.UUID == "" {
		t.Fatal("expected message UUID to be set")
	}
	if msg.Metadata.Get("content_type") != "application/json" {
		t.Fatalf("unexpected content type %q", msg.Metadata.Get("content_type"))
	}

	out, err := DecodeJSON[samplePayload](msg)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestNewJSONMessage_Unmarshalable(t *testing.T) {
	if _, err := NewJSONMessage(make(chan int)); err == nil {
		t.Fatal("expected error for unmarshalable payload")
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	msg, _ := NewJSONMessage("x")
	msg.Payload = []byte("{not json")
	if _, err := DecodeJSON[samplePayload](msg); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPublishWith_InjectsTrace(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "save")
	defer span.End()

	pub := &recordingPublisher{}
	msg, _ := NewJSONMessage(samplePayload{Name: "n"})
	if err := PublishWith(ctx, pub, "subscription.created", msg); err != nil {
		t.Fatalf("PublishWith: %v", err)
	}
	if pub.topic != "subscription.created" || len(pub.msgs) != 1 {
		t.Fatalf("unexpected publish: topic=%q n=%d", pub.topic, len(pub.msgs))
	}
	if pub.msgs[0].Metadata.Get("traceparent") == "" {
		t.Fatal("expected traceparent metadata")
	}
}

func TestPublishWith_WrapsError(t *testing.T) {
	boom := errors.New("boom")
	msg, _ := NewJSONMessage(samplePayload{})
	err := PublishWith(context.Background(), &recordingPublisher{err: boom}, "t", msg)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
