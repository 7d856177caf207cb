package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelpay_echo/internal/models"
)

// DraftTTL is how long a booking draft may wait for its webhook before the
// store expires it. An abandoned payment leaves the draft to expire naturally.
const DraftTTL = time.Hour

const draftKeyPrefix = "booking-draft:"

// ErrDraftNotFound is returned when no draft exists for an order id, either
// because it expired, was never created, or was already consumed.
var ErrDraftNotFound = errors.New("booking draft not found")

// DraftStore is the capability interface over the correlation store.
// Take must be atomic (get-and-delete) so that concurrent duplicate webhook
// deliveries cannot both consume the same draft.
type DraftStore interface {
	Put(ctx context.Context, draft *models.BookingDraft, ttl time.Duration) error
	Take(ctx context.Context, orderID string) (*models.BookingDraft, error)
}

// RedisDraftStore backs DraftStore with Redis, using GETDEL for Take.
type RedisDraftStore struct {
	cache *RedisCache
}

func NewRedisDraftStore(cache *RedisCache) *RedisDraftStore {
	return &RedisDraftStore{cache: cache}
}

func (s *RedisDraftStore) Put(ctx context.Context, draft *models.BookingDraft, ttl time.Duration) error {
	if err := s.cache.Set(ctx, draftKeyPrefix+draft.OrderID, draft, ttl); err != nil {
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Take(ctx context.Context, orderID string) (*models.BookingDraft, error) {
	var draft models.BookingDraft
	err := s.cache.Take(ctx, draftKeyPrefix+orderID, &draft)
	if errors.Is(err, ErrCacheMiss) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking draft: %w", err)
	}
	return &draft, nil
}
