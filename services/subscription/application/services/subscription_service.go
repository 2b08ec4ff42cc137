package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/newsletter/pkg/cache"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/pkg/telemetry"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
	"github.com/ghuser/newsletter/services/subscription/domain/repositories"
	domainsvcs "github.com/ghuser/newsletter/services/subscription/domain/services"
)

const confirmPath = "/subscriptions/confirm"

// SubscriberCache is the read-model cache used by SubscriptionService.
// *cache.SubscriberCache satisfies it.
type SubscriberCache interface {
	Get(ctx context.Context, id uuid.UUID) (*pkgcache.CachedSubscriber, error)
	Set(ctx context.Context, s *pkgcache.CachedSubscriber) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubscribeResult is what a successful Subscribe hands back to the caller.
type SubscribeResult struct {
	Subscriber       *models.Subscriber
	ConfirmationLink string
}

// SubscriptionService orchestrates the subscribe and confirm flows.
// Event publishing is handled by the repository (outbox pattern).
type SubscriptionService struct {
	repo    repositories.SubscriberRepository
	cache   SubscriberCache
	metrics *telemetry.Metrics
	log     logger.Logger
	baseURL string
}

// NewSubscriptionService wires the service. cache and metrics may be nil.
func NewSubscriptionService(
	repo repositories.SubscriberRepository,
	cache SubscriberCache,
	metrics *telemetry.Metrics,
	log logger.Logger,
	baseURL string,
) *SubscriptionService {
	return &SubscriptionService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Subscribe parses both fields, stores a pending subscriber with a fresh
// confirmation token and returns the confirmation link. Name errors are
// returned unwrapped so their message reaches the client as is.
func (s *SubscriptionService) Subscribe(ctx context.Context, rawName, rawEmail string) (*SubscribeResult, error) {
	name, err := models.ParseSubscriberName(rawName)
	if err != nil {
		var nameErr *models.InvalidSubscriberNameError
		if errors.As(err, &nameErr) {
			s.metrics.NameRejected(ctx, nameErr.Reasons.String())
		}
		return nil, err
	}

	email, err := models.ParseSubscriberEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	sub := models.NewSubscriberFromRequest(models.NewSubscriber{Email: email, Name: name})
	if err := domainsvcs.ValidateSubscriberForCreation(sub); err != nil {
		return nil, fmt.Errorf("validate subscriber: %w", err)
	}

	token, err := models.NewSubscriptionToken()
	if err != nil {
		return nil, fmt.Errorf("generate subscription token: %w", err)
	}

	link := s.ConfirmationLink(token)
	if err := s.repo.Save(ctx, sub, token, link); err != nil {
		return nil, fmt.Errorf("save subscriber: %w", err)
	}
	s.metrics.SubscriptionCreated(ctx)

	return &SubscribeResult{Subscriber: sub, ConfirmationLink: link}, nil
}

// ConfirmationLink builds the public URL that confirms token.
func (s *SubscriptionService) ConfirmationLink(token models.SubscriptionToken) string {
	q := url.Values{"subscription_token": {token.String()}}
	return s.baseURL + confirmPath + "?" + q.Encode()
}

// Confirm resolves rawToken and marks its subscriber as confirmed.
// Malformed tokens yield ErrInvalidSubscriptionToken, unknown ones
// ErrSubscriptionTokenNotFound.
func (s *SubscriptionService) Confirm(ctx context.Context, rawToken string) (uuid.UUID, error) {
	token, err := models.ParseSubscriptionToken(rawToken)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := s.repo.GetSubscriberIDByToken(ctx, token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve subscription token: %w", err)
	}

	if err := s.repo.Confirm(ctx, id); err != nil {
		return uuid.Nil, fmt.Errorf("confirm subscriber: %w", err)
	}
	s.metrics.SubscriptionConfirmed(ctx)
	s.evict(ctx, id)

	return id, nil
}

// GetByID reads through the cache:
//  1. Check Redis first.
//  2. On a miss or cache error, query Postgres.
//  3. Store the Postgres result in the cache.
func (s *SubscriptionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscriber, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCache(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "subscriber cache read failed", "subscriber_id", id, "error", err)
		}
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subscriber: %w", err)
	}
	s.store(ctx, sub)
	return sub, nil
}

// WarmCache loads the subscriber from Postgres into the cache.
func (s *SubscriptionService) WarmCache(ctx context.Context, id uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}
	if err := s.cache.Set(ctx, toCache(sub)); err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}
	return nil
}

// ExpirePending deletes the subscriber if it never confirmed. Reports
// whether anything was removed; confirmed subscribers are left alone.
func (s *SubscriptionService) ExpirePending(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.repo.DeletePending(ctx, id)
	if err != nil {
		return false, fmt.Errorf("expire pending subscriber: %w", err)
	}
	if deleted {
		s.metrics.SubscriptionExpired(ctx)
		s.evict(ctx, id)
	}
	return deleted, nil
}

func (s *SubscriptionService) store(ctx context.Context, sub *models.Subscriber) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, toCache(sub)); err != nil {
		s.log.WarnContext(ctx, "subscriber cache write failed", "subscriber_id", sub.ID, "error", err)
	}
}

func (s *SubscriptionService) evict(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "subscriber cache delete failed", "subscriber_id", id, "error", err)
	}
}

func toCache(sub *models.Subscriber) *pkgcache.CachedSubscriber {
	return &pkgcache.CachedSubscriber{
		ID:           sub.ID,
		Email:        sub.Email.String(),
		Name:         sub.Name.String(),
		Status:       string(sub.Status),
		SubscribedAt: sub.SubscribedAt,
	}
}

func fromCache(c *pkgcache.CachedSubscriber) *models.Subscriber {
	return models.RestoreSubscriber(c.ID, c.Email, c.Name, models.SubscriptionStatus(c.Status), c.SubscribedAt)
}
