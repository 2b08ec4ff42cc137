package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/newsletter/pkg/cache"
	subdomain "github.com/ghuser/newsletter/services/subscription/domain"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

type memoryRepo struct {
	mu       sync.Mutex
	subs     map[uuid.UUID]*models.Subscriber
	tokens   map[models.SubscriptionToken]uuid.UUID
	links    map[uuid.UUID]string
	getCalls int
	saveErr  error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		subs:   make(map[uuid.UUID]*models.Subscriber),
		tokens: make(map[models.SubscriptionToken]uuid.UUID),
		links:  make(map[uuid.UUID]string),
	}
}

func (r *memoryRepo) Save(_ context.Context, s *models.Subscriber, token models.SubscriptionToken, link string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	for _, existing := range r.subs {
		if existing.Email.String() == s.Email.String() {
			return subdomain.ErrSubscriberAlreadyExists
		}
	}
	cp := *s
	r.subs[s.ID] = &cp
	r.tokens[token] = s.ID
	r.links[s.ID] = link
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	s, ok := r.subs[id]
	if !ok {
		return nil, subdomain.ErrSubscriberNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) GetSubscriberIDByToken(_ context.Context, token models.SubscriptionToken) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.tokens[token]
	if !ok {
		return uuid.Nil, subdomain.ErrSubscriptionTokenNotFound
	}
	return id, nil
}

func (r *memoryRepo) Confirm(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok {
		return subdomain.ErrSubscriberNotFound
	}
	s.Confirm()
	return nil
}

func (r *memoryRepo) DeletePending(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok || !s.IsPending() {
		return false, nil
	}
	delete(r.subs, id)
	for tok, sid := range r.tokens {
		if sid == id {
			delete(r.tokens, tok)
		}
	}
	return true, nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]pkgcache.CachedSubscriber
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[uuid.UUID]pkgcache.CachedSubscriber)}
}

func (c *memoryCache) Get(_ context.Context, id uuid.UUID) (*pkgcache.CachedSubscriber, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	e, ok := c.entries[id]
	if !ok {
		return nil, redis.Nil
	}
	return &e, nil
}

func (c *memoryCache) Set(_ context.Context, s *pkgcache.CachedSubscriber) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[s.ID] = *s
	return nil
}

func (c *memoryCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

func (c *memoryCache) has(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

var errBoom = errors.New("boom")
