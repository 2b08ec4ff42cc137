// Package postgres implements the subscription repositories on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/newsletter/pkg/database"
	"github.com/ghuser/newsletter/pkg/events"
	subdomain "github.com/ghuser/newsletter/services/subscription/domain"
	domainevents "github.com/ghuser/newsletter/services/subscription/domain/events"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
	"github.com/ghuser/newsletter/services/subscription/infrastructure/persistence/postgres/db"
)

const (
	pgUniqueViolation     = "23505"
	emailUniqueConstraint = "subscriptions_email_key"
	eventVersion          = 1
)

// SubscriberRepository implements repositories.SubscriberRepository.
// Every state change publishes its domain event in the same transaction.
type SubscriberRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSubscriberRepository returns a repository on the shared pool. A nil bus
// disables event publishing.
func NewSubscriberRepository(database *database.Database, bus *events.EventBus) *SubscriberRepository {
	return &SubscriberRepository{db: database, bus: bus}
}

// Save inserts the subscriber and its token, then publishes SubscriberCreatedEvent.
func (r *SubscriberRepository) Save(ctx context.Context, s *models.Subscriber, token models.SubscriptionToken, confirmationLink string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertSubscription(ctx, db.InsertSubscriptionParams{
			ID:           s.ID,
			Email:        s.Email.String(),
			Name:         s.Name.String(),
			Status:       string(s.Status),
			SubscribedAt: s.SubscribedAt,
		}); err != nil {
			if isEmailTaken(err) {
				return subdomain.ErrSubscriberAlreadyExists
			}
			return fmt.Errorf("insert subscription: %w", err)
		}

		if err := q.InsertSubscriptionToken(ctx, db.InsertSubscriptionTokenParams{
			SubscriptionToken: token.String(),
			SubscriberID:      s.ID,
		}); err != nil {
			return fmt.Errorf("insert subscription token: %w", err)
		}

		return r.publish(ctx, tx, domainevents.TopicSubscriberCreated, domainevents.SubscriberCreatedEvent{
			EventID:          uuid.New(),
			Version:          eventVersion,
			SubscriberID:     s.ID,
			Email:            s.Email.String(),
			Name:             s.Name.String(),
			ConfirmationLink: confirmationLink,
			OccurredAt:       s.SubscribedAt,
		})
	})
}

// GetByID returns ErrSubscriberNotFound when no row matches.
func (r *SubscriberRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscriber, error) {
	row, err := db.New(r.db.DB()).GetSubscriptionByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, subdomain.ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("query subscription: %w", err)
	}
	return rowToSubscriber(row), nil
}

// GetSubscriberIDByToken returns ErrSubscriptionTokenNotFound for unknown tokens.
func (r *SubscriberRepository) GetSubscriberIDByToken(ctx context.Context, token models.SubscriptionToken) (uuid.UUID, error) {
	id, err := db.New(r.db.DB()).GetSubscriberIDByToken(ctx, token.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, subdomain.ErrSubscriptionTokenNotFound
		}
		return uuid.Nil, fmt.Errorf("query subscription token: %w", err)
	}
	return id, nil
}

// Confirm sets status to confirmed and publishes SubscriptionConfirmedEvent.
// Confirming an already confirmed subscriber succeeds.
func (r *SubscriberRepository) Confirm(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := db.New(tx).ConfirmSubscription(ctx, id)
		if err != nil {
			return fmt.Errorf("confirm subscription: %w", err)
		}
		if n == 0 {
			return subdomain.ErrSubscriberNotFound
		}
		return r.publish(ctx, tx, domainevents.TopicSubscriptionConfirmed, domainevents.SubscriptionConfirmedEvent{
			EventID:      uuid.New(),
			Version:      eventVersion,
			SubscriberID: id,
			OccurredAt:   time.Now().UTC(),
		})
	})
}

// DeletePending removes a still-pending subscriber. Tokens go with it through
// ON DELETE CASCADE.
func (r *SubscriberRepository) DeletePending(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := db.New(r.db.DB()).DeletePendingSubscription(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete pending subscription: %w", err)
	}
	return n > 0, nil
}

func (r *SubscriberRepository) publish(ctx context.Context, tx *sql.Tx, topic string, event any) error {
	if r.bus == nil {
		return nil
	}
	msg, err := events.NewJSONMessage(event)
	if err != nil {
		return err
	}
	msg.Metadata.Set("event_version", strconv.Itoa(eventVersion))

	pub, err := r.bus.TxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	if err := events.PublishWith(ctx, pub, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func isEmailTaken(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgUniqueViolation &&
		pgErr.ConstraintName == emailUniqueConstraint
}

func rowToSubscriber(row db.Subscription) *models.Subscriber {
	return models.RestoreSubscriber(
		row.ID,
		row.Email,
		row.Name,
		models.SubscriptionStatus(row.Status),
		row.SubscribedAt,
	)
}
