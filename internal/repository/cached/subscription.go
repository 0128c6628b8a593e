// Package cached provides write-through cache decorators over the
// postgresql repositories. The decorators memoize read queries and
// invalidate conservatively on every mutating call; dropping the cache
// never changes query results, only their latency. Cache failures are
// swallowed and treated as misses so a cache outage degrades latency,
// never correctness.
package cached

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
	"github.com/qanda-labs/engage-backend-go/internal/domain/subscription"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/cache"
)

type subscriptionCache struct {
	repo  subscription.Repository
	cache cache.Cache
}

// NewSubscriptionRepository wraps repo with a memoization layer for its
// read operations. Invalidation is per target: every mutation rotates
// the target's generation token, which orphans all count, exists,
// id-list and list entries for that target in a single cache write.
func NewSubscriptionRepository(repo subscription.Repository, c cache.Cache) subscription.Repository {
	return &subscriptionCache{repo: repo, cache: c}
}

func genKey(targetID int64) string {
	return fmt.Sprintf("sub:gen:%d", targetID)
}

// generation returns the current generation token for a target,
// minting one when none exists. ok is false when the cache is
// unavailable, in which case the caller bypasses memoization.
func (s *subscriptionCache) generation(ctx context.Context, targetID int64) (string, bool) {
	key := genKey(targetID)

	value, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[SubscriptionCache] generation read failed for target %d: %v", targetID, err)
		return "", false
	}
	if hit {
		return string(value), true
	}

	gen := uuid.NewString()
	if err := s.cache.Set(ctx, key, []byte(gen)); err != nil {
		log.Printf("[SubscriptionCache] generation write failed for target %d: %v", targetID, err)
		return "", false
	}
	return gen, true
}

// invalidate rotates the generation token for a target. Called only
// after the store write has committed. A failed rotation is logged and
// swallowed: the next mutation rotates again, so staleness self-heals.
func (s *subscriptionCache) invalidate(ctx context.Context, targetID int64) {
	if err := s.cache.Set(ctx, genKey(targetID), []byte(uuid.NewString())); err != nil {
		log.Printf("[SubscriptionCache] invalidation failed for target %d: %v", targetID, err)
	}
}

// lookup unmarshals the cached value for key into out and reports a hit.
func (s *subscriptionCache) lookup(ctx context.Context, key string, out interface{}) bool {
	value, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[SubscriptionCache] read failed for %s: %v", key, err)
		return false
	}
	if !hit {
		return false
	}
	if err := json.Unmarshal(value, out); err != nil {
		log.Printf("[SubscriptionCache] corrupt entry at %s: %v", key, err)
		return false
	}
	return true
}

// store marshals value under key; failures are logged and swallowed.
func (s *subscriptionCache) store(ctx context.Context, key string, value interface{}) {
	encoded, err := json.Marshal(value)
	if err != nil {
		log.Printf("[SubscriptionCache] marshal failed for %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, encoded); err != nil {
		log.Printf("[SubscriptionCache] write failed for %s: %v", key, err)
	}
}

func (s *subscriptionCache) Create(ctx context.Context, sub *subscription.Subscription) (int64, error) {
	id, err := s.repo.Create(ctx, sub)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, sub.TargetID)
	return id, nil
}

func (s *subscriptionCache) Delete(ctx context.Context, filter subscription.DeleteFilter) (int64, error) {
	removed, err := s.repo.Delete(ctx, filter)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, filter.TargetID)
	return removed, nil
}

func (s *subscriptionCache) Exists(ctx context.Context, targetID int64, kind activity.Kind, userID int64) (bool, error) {
	gen, ok := s.generation(ctx, targetID)
	if !ok {
		return s.repo.Exists(ctx, targetID, kind, userID)
	}

	key := fmt.Sprintf("sub:exists:%s:%d:%s:%d", gen, targetID, kind, userID)

	var exists bool
	if s.lookup(ctx, key, &exists) {
		return exists, nil
	}

	exists, err := s.repo.Exists(ctx, targetID, kind, userID)
	if err != nil {
		return false, err
	}

	s.store(ctx, key, exists)
	return exists, nil
}

func (s *subscriptionCache) Count(ctx context.Context, targetID int64, kind activity.Kind) (int, error) {
	gen, ok := s.generation(ctx, targetID)
	if !ok {
		return s.repo.Count(ctx, targetID, kind)
	}

	key := fmt.Sprintf("sub:count:%s:%d:%s", gen, targetID, kind)

	var count int
	if s.lookup(ctx, key, &count) {
		return count, nil
	}

	count, err := s.repo.Count(ctx, targetID, kind)
	if err != nil {
		return 0, err
	}

	s.store(ctx, key, count)
	return count, nil
}

func (s *subscriptionCache) SubscriberIDs(ctx context.Context, filter subscription.IDFilter) ([]int64, error) {
	// An any-target query cannot be invalidated by a single-target
	// mutation, so it always goes to the store.
	if filter.TargetID == 0 {
		return s.repo.SubscriberIDs(ctx, filter)
	}

	gen, ok := s.generation(ctx, filter.TargetID)
	if !ok {
		return s.repo.SubscriberIDs(ctx, filter)
	}

	kinds := make([]string, len(filter.Activities))
	for i, kind := range filter.Activities {
		kinds[i] = string(kind)
	}
	key := fmt.Sprintf("sub:ids:%s:%d:%s:%d", gen, filter.TargetID, strings.Join(kinds, ","), filter.QuestionID)

	var ids []int64
	if s.lookup(ctx, key, &ids) {
		return ids, nil
	}

	ids, err := s.repo.SubscriberIDs(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, ids)
	return ids, nil
}

func (s *subscriptionCache) List(ctx context.Context, targetID int64, kind activity.Kind, limit int) ([]*subscription.Subscription, error) {
	gen, ok := s.generation(ctx, targetID)
	if !ok {
		return s.repo.List(ctx, targetID, kind, limit)
	}

	key := fmt.Sprintf("sub:list:%s:%d:%s:%d", gen, targetID, kind, limit)

	var subs []*subscription.Subscription
	if s.lookup(ctx, key, &subs) {
		return subs, nil
	}

	subs, err := s.repo.List(ctx, targetID, kind, limit)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, subs)
	return subs, nil
}
