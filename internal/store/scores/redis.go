// internal/store/scores/redis.go
package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "jobseeker:score:"

func recordKey(userID string) string  { return keyPrefix + userID }
func historyKey(userID string) string { return keyPrefix + userID + ":history" }

// RedisStore keeps the record as JSON and the history as a capped list.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*models.ScoreRecord, error) {
	raw, err := s.client.Get(ctx, recordKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get score of user %s: %w", userID, err)
	}

	var rec models.ScoreRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode score of user %s: %w", userID, err)
	}

	items, err := s.client.LRange(ctx, historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("get score history of user %s: %w", userID, err)
	}
	rec.History = make([]models.HistoryEntry, 0, len(items))
	for _, item := range items {
		var h models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &h); err != nil {
			return nil, fmt.Errorf("decode score history of user %s: %w", userID, err)
		}
		rec.History = append(rec.History, h)
	}
	return &rec, nil
}

// Save writes the record, pushes the entry and trims the list to the last
// limit entries inside one MULTI/EXEC.
func (s *RedisStore) Save(ctx context.Context, userID string, record *models.ScoreRecord, entry models.HistoryEntry, limit int) error {
	stored := *record
	stored.UserID = userID
	stored.History = nil

	recJSON, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode score of user %s: %w", userID, err)
	}
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode score history of user %s: %w", userID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKey(userID), recJSON, 0)
		pipe.RPush(ctx, historyKey(userID), entryJSON)
		if limit > 0 {
			pipe.LTrim(ctx, historyKey(userID), int64(-limit), -1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save score of user %s: %w", userID, err)
	}
	return nil
}

// CachedStore is a read-through cache in front of another store. Save writes
// through and drops the cached copy.
type CachedStore struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewCachedStore(next Store, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{next: next, client: client, ttl: ttl, log: log}
}

func cacheKey(userID string) string { return keyPrefix + "cache:" + userID }

func (s *CachedStore) Get(ctx context.Context, userID string) (*models.ScoreRecord, error) {
	if raw, err := s.client.Get(ctx, cacheKey(userID)).Bytes(); err == nil {
		var rec models.ScoreRecord
		if err := json.Unmarshal(raw, &rec); err == nil {
			return &rec, nil
		}
	}

	rec, err := s.next.Get(ctx, userID)
	if err != nil || rec == nil {
		return rec, err
	}

	if data, err := json.Marshal(rec); err == nil {
		s.client.Set(ctx, cacheKey(userID), data, s.ttl)
	}
	return rec, nil
}

// Save persists through to the next store. Cache failures after a successful
// save are logged, not returned.
func (s *CachedStore) Save(ctx context.Context, userID string, record *models.ScoreRecord, entry models.HistoryEntry, limit int) error {
	if err := s.next.Save(ctx, userID, record, entry, limit); err != nil {
		return err
	}

	delErr := s.client.Del(ctx, cacheKey(userID)).Err()
	if delErr == nil {
		return nil
	}

	// Replace the stale copy with the saved record when the key cannot be dropped.
	setErr := s.refresh(ctx, userID)
	if setErr == nil {
		return nil
	}

	s.log.Warn("score cache invalidation failed", map[string]interface{}{
		"userId":     userID,
		"error":      delErr.Error(),
		"refreshErr": setErr.Error(),
		"staleFor":   s.ttl.String(),
	})
	return nil
}

func (s *CachedStore) refresh(ctx context.Context, userID string) error {
	rec, err := s.next.Get(ctx, userID)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("score of user %s missing after save", userID)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cacheKey(userID), data, s.ttl).Err()
}
