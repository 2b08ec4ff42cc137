package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/newsletter/pkg/events"
	"github.com/ghuser/newsletter/pkg/logger"
	domainevents "github.com/ghuser/newsletter/services/subscription/domain/events"
)

const (
	topicCreated   = domainevents.TopicSubscriberCreated
	topicConfirmed = domainevents.TopicSubscriptionConfirmed
)

type cacheWarmer interface {
	WarmCache(ctx context.Context, id uuid.UUID) error
}

type startExpiryFunc func(ctx context.Context, id uuid.UUID) error

// handleSubscriberCreated warms the read-model cache, records that a
// confirmation link was issued (token masked) and schedules the expiry workflow.
// Handlers must be idempotent: the bus retries failed messages.
func handleSubscriberCreated(warmer cacheWarmer, startExpiry startExpiryFunc, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.DecodeJSON[domainevents.SubscriberCreatedEvent](msg)
		if err != nil {
			return err
		}

		if err := warmer.WarmCache(ctx, evt.SubscriberID); err != nil {
			log.WarnContext(ctx, "cache warm failed for subscription.created",
				"subscriber_id", evt.SubscriberID, "error", err)
		}

		log.InfoContext(ctx, "confirmation link issued",
			"subscriber_id", evt.SubscriberID,
			"confirmation_link", redactLink(evt.ConfirmationLink),
		)

		if startExpiry == nil {
			return nil
		}
		if err := startExpiry(ctx, evt.SubscriberID); err != nil {
			return fmt.Errorf("schedule expiry for %s: %w", evt.SubscriberID, err)
		}
		return nil
	}
}

// handleSubscriptionConfirmed refreshes the cached subscriber with its new status.
func handleSubscriptionConfirmed(warmer cacheWarmer, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.DecodeJSON[domainevents.SubscriptionConfirmedEvent](msg)
		if err != nil {
			return err
		}
		if err := warmer.WarmCache(ctx, evt.SubscriberID); err != nil {
			log.WarnContext(ctx, "cache refresh failed for subscription.confirmed",
				"subscriber_id", evt.SubscriberID, "error", err)
			return nil
		}
		log.InfoContext(ctx, "subscription confirmed", "subscriber_id", evt.SubscriberID)
		return nil
	}
}

// redactLink masks every query value of a confirmation link so the token
// never reaches the log. Unparseable links are dropped entirely.
func redactLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return "[REDACTED]"
	}
	q := u.Query()
	for k := range q {
		q.Set(k, "REDACTED")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
