package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/newsletter/migrations/subscription"
	"github.com/ghuser/newsletter/pkg/database"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/pkg/migrator"
	subdomain "github.com/ghuser/newsletter/services/subscription/domain"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
	"github.com/ghuser/newsletter/services/subscription/infrastructure/persistence/postgres/db"
)

func TestIsEmailTaken(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"email unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "subscriptions_email_key"}, true},
		{"other unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "subscription_tokens_pkey"}, false},
		{"other code", &pgconn.PgError{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailTaken(tt.err); got != tt.want {
				t.Fatalf("isEmailTaken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowToSubscriber(t *testing.T) {
	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	row := db.Subscription{
		ID:           uuid.New(),
		Email:        "ursula@domain.com",
		Name:         " Ursula ",
		Status:       "confirmed",
		SubscribedAt: at,
	}
	s := rowToSubscriber(row)
	if s.ID != row.ID || s.Email.String() != row.Email || s.Name.String() != row.Name {
		t.Fatalf("unexpected subscriber %+v", s)
	}
	if s.Status != models.StatusConfirmed || !s.SubscribedAt.Equal(at) {
		t.Fatalf("unexpected status or time: %s %s", s.Status, s.SubscribedAt)
	}
}

// Integration tests, skipped unless DATABASE_URL is set.
func TestSubscriberRepositoryIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	d, err := database.NewPool(ctx, url, 2, logger.Discard())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer d.Close()

	if err := migrator.Up(ctx, d.DB(), subscription.MigrationsFS, logger.Discard()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewSubscriberRepository(d, nil)

	newPending := func(t *testing.T) (*models.Subscriber, models.SubscriptionToken) {
		t.Helper()
		email, err := models.ParseSubscriberEmail(uuid.NewString() + "@example.com")
		if err != nil {
			t.Fatalf("email: %v", err)
		}
		s := models.NewSubscriberFromRequest(models.NewSubscriber{
			Email: email,
			Name:  models.MustParseSubscriberName("Ursula Le Guin"),
		})
		token, err := models.NewSubscriptionToken()
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		return s, token
	}

	t.Run("save then confirm through token", func(t *testing.T) {
		s, token := newPending(t)
		if err := repo.Save(ctx, s, token, "http://localhost/confirm"); err != nil {
			t.Fatalf("Save: %v", err)
		}

		id, err := repo.GetSubscriberIDByToken(ctx, token)
		if err != nil || id != s.ID {
			t.Fatalf("GetSubscriberIDByToken = %s, %v", id, err)
		}
		if err := repo.Confirm(ctx, id); err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		got, err := repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Status != models.StatusConfirmed {
			t.Fatalf("expected confirmed, got %s", got.Status)
		}
		deleted, err := repo.DeletePending(ctx, id)
		if err != nil || deleted {
			t.Fatalf("confirmed subscriber must not be deleted: %v %v", deleted, err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		s, token := newPending(t)
		if err := repo.Save(ctx, s, token, ""); err != nil {
			t.Fatalf("Save: %v", err)
		}
		dup, token2 := newPending(t)
		dup.Email = s.Email
		if err := repo.Save(ctx, dup, token2, ""); !errors.Is(err, subdomain.ErrSubscriberAlreadyExists) {
			t.Fatalf("expected ErrSubscriberAlreadyExists, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		token, _ := models.NewSubscriptionToken()
		if _, err := repo.GetSubscriberIDByToken(ctx, token); !errors.Is(err, subdomain.ErrSubscriptionTokenNotFound) {
			t.Fatalf("expected ErrSubscriptionTokenNotFound, got %v", err)
		}
	})

	t.Run("delete pending cascades tokens", func(t *testing.T) {
		s, token := newPending(t)
		if err := repo.Save(ctx, s, token, ""); err != nil {
			t.Fatalf("Save: %v", err)
		}
		deleted, err := repo.DeletePending(ctx, s.ID)
		if err != nil || !deleted {
			t.Fatalf("DeletePending = %v, %v", deleted, err)
		}
		if _, err := repo.GetSubscriberIDByToken(ctx, token); !errors.Is(err, subdomain.ErrSubscriptionTokenNotFound) {
			t.Fatalf("expected token removed, got %v", err)
		}
		if _, err := repo.GetByID(ctx, s.ID); !errors.Is(err, subdomain.ErrSubscriberNotFound) {
			t.Fatalf("expected ErrSubscriberNotFound, got %v", err)
		}
	})

	t.Run("confirm unknown id", func(t *testing.T) {
		if err := repo.Confirm(ctx, uuid.New()); !errors.Is(err, subdomain.ErrSubscriberNotFound) {
			t.Fatalf("expected ErrSubscriberNotFound, got %v", err)
		}
	})
}
