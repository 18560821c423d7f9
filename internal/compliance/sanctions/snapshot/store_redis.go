// Package snapshot persists sanctions registry contents so a restarted
// process resumes with the same list versions it last served.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"kycaml/internal/compliance/models"
)

const (
	listKeyPrefix = "sanctions:list:"
	indexKey      = "sanctions:lists"
	revisionKey   = "sanctions:revision"
)

// RedisStore keeps one JSON document per list plus a set of list IDs.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed snapshot store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveLists replaces the stored snapshot atomically.
func (s *RedisStore) SaveLists(ctx context.Context, lists []models.SanctionsList) error {
	payloads := make(map[string][]byte, len(lists))
	for _, l := range lists {
		b, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("marshal sanctions list %s: %w", l.ID, err)
		}
		payloads[l.ID] = b
	}

	previous, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("read sanctions index: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range previous {
			if _, keep := payloads[id]; !keep {
				pipe.Del(ctx, listKeyPrefix+id)
			}
		}
		pipe.Del(ctx, indexKey)
		for id, b := range payloads {
			pipe.Set(ctx, listKeyPrefix+id, b, 0)
			pipe.SAdd(ctx, indexKey, id)
		}
		pipe.Incr(ctx, revisionKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save sanctions snapshot: %w", err)
	}
	return nil
}

// LoadLists returns the stored lists ordered by ID. An empty store yields no lists.
func (s *RedisStore) LoadLists(ctx context.Context) ([]models.SanctionsList, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read sanctions index: %w", err)
	}
	slices.Sort(ids)

	lists := make([]models.SanctionsList, 0, len(ids))
	for _, id := range ids {
		raw, err := s.client.Get(ctx, listKeyPrefix+id).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read sanctions list %s: %w", id, err)
		}
		var l models.SanctionsList
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("decode sanctions list %s: %w", id, err)
		}
		lists = append(lists, l)
	}
	return lists, nil
}

// Revision returns how many times the snapshot has been saved.
func (s *RedisStore) Revision(ctx context.Context) (int64, error) {
	n, err := s.client.Get(ctx, revisionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
