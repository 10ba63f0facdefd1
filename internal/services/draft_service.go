package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hms/internal/status"
	"hms/monitoring"
)

const draftKeyPrefix = "draft:"

// DraftService persists in-progress registration wizard state server-side,
// keyed by a client-generated draft key.
type DraftService struct {
	redis   *redis.Client
	ttl     time.Duration
	monitor *monitoring.Monitor
}

func NewDraftService(redisClient *redis.Client, ttl time.Duration, monitor *monitoring.Monitor) *DraftService {
	return &DraftService{
		redis:   redisClient,
		ttl:     ttl,
		monitor: monitor,
	}
}

func (s *DraftService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	val, err := s.redis.Get(ctx, draftKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		s.monitor.TrackDraftOperation("get", "miss")
		return nil, status.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	s.monitor.TrackDraftOperation("get", "hit")
	return json.RawMessage(val), nil
}

// Put stores the draft blob and refreshes its TTL.
func (s *DraftService) Put(ctx context.Context, key string, blob json.RawMessage) error {
	if !json.Valid(blob) {
		return status.ErrDraftInvalid
	}
	if err := s.redis.Set(ctx, draftKeyPrefix+key, string(blob), s.ttl).Err(); err != nil {
		s.monitor.TrackDraftOperation("put", "error")
		return fmt.Errorf("put draft: %w", err)
	}
	s.monitor.TrackDraftOperation("put", "ok")
	return nil
}

// Delete removes the draft. Deleting an absent draft is not an error.
func (s *DraftService) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, draftKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	s.monitor.TrackDraftOperation("delete", "ok")
	return nil
}
