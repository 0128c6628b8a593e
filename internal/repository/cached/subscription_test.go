package cached

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
	"github.com/qanda-labs/engage-backend-go/internal/domain/subscription"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/cache"
)

// countingSubscriptionRepo is an in-memory store that counts how many
// reads actually reach it.
type countingSubscriptionRepo struct {
	nextID    int64
	rows      []*subscription.Subscription
	storeHits int
}

func (r *countingSubscriptionRepo) Create(_ context.Context, sub *subscription.Subscription) (int64, error) {
	r.nextID++
	stored := *sub
	stored.ID = r.nextID
	r.rows = append(r.rows, &stored)
	return stored.ID, nil
}

func (r *countingSubscriptionRepo) Delete(_ context.Context, filter subscription.DeleteFilter) (int64, error) {
	var kept []*subscription.Subscription
	var removed int64
	for _, row := range r.rows {
		match := row.TargetID == filter.TargetID &&
			(filter.UserID == 0 || row.UserID == filter.UserID) &&
			(filter.Activity == activity.Any || row.Activity == filter.Activity)
		if match {
			removed++
		} else {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return removed, nil
}

func (r *countingSubscriptionRepo) Exists(_ context.Context, targetID int64, kind activity.Kind, userID int64) (bool, error) {
	r.storeHits++
	for _, row := range r.rows {
		if row.TargetID == targetID && row.Activity == kind && row.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *countingSubscriptionRepo) Count(_ context.Context, targetID int64, kind activity.Kind) (int, error) {
	r.storeHits++
	count := 0
	for _, row := range r.rows {
		if row.TargetID == targetID && row.Activity == kind {
			count++
		}
	}
	return count, nil
}

func (r *countingSubscriptionRepo) SubscriberIDs(_ context.Context, filter subscription.IDFilter) ([]int64, error) {
	r.storeHits++
	seen := map[int64]bool{}
	var ids []int64
	for _, row := range r.rows {
		if filter.TargetID != 0 && row.TargetID != filter.TargetID {
			continue
		}
		if !seen[row.UserID] {
			seen[row.UserID] = true
			ids = append(ids, row.UserID)
		}
	}
	return ids, nil
}

func (r *countingSubscriptionRepo) List(_ context.Context, targetID int64, kind activity.Kind, limit int) ([]*subscription.Subscription, error) {
	r.storeHits++
	var subs []*subscription.Subscription
	for i := len(r.rows) - 1; i >= 0 && len(subs) < limit; i-- {
		if r.rows[i].TargetID == targetID && r.rows[i].Activity == kind {
			subs = append(subs, r.rows[i])
		}
	}
	return subs, nil
}

// brokenCache fails every operation.
type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errCacheDown }
func (brokenCache) Set(context.Context, string, []byte) error         { return errCacheDown }
func (brokenCache) Delete(context.Context, ...string) error           { return errCacheDown }

func seedSubscription(t *testing.T, repo subscription.Repository, userID, targetID int64, kind activity.Kind) {
	t.Helper()
	_, err := repo.Create(context.Background(), &subscription.Subscription{
		UserID:   userID,
		TargetID: targetID,
		Activity: kind,
	})
	require.NoError(t, err)
}

func TestSubscriptionCache_CountMemoized(t *testing.T) {
	ctx := context.Background()
	store := &countingSubscriptionRepo{}
	repo := NewSubscriptionRepository(store, cache.NewMemory())

	seedSubscription(t, repo, 1, 7, activity.KindQuestionAll)
	seedSubscription(t, repo, 2, 7, activity.KindQuestionAll)

	count, err := repo.Count(ctx, 7, activity.KindQuestionAll)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	hits := store.storeHits
	count, err = repo.Count(ctx, 7, activity.KindQuestionAll)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, hits, store.storeHits, "warm read must not reach the store")
}

func TestSubscriptionCache_CoherentAfterUnsubscribe(t *testing.T) {
	ctx := context.Background()
	store := &countingSubscriptionRepo{}
	repo := NewSubscriptionRepository(store, cache.NewMemory())

	seedSubscription(t, repo, 1, 7, activity.KindQuestionAll)
	seedSubscription(t, repo, 2, 7, activity.KindQuestionAll)

	// Warm the count cache.
	count, err := repo.Count(ctx, 7, activity.KindQuestionAll)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	removed, err := repo.Delete(ctx, subscription.DeleteFilter{TargetID: 7, UserID: 1, Activity: activity.KindQuestionAll})
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	// The stale cached value must not be served.
	count, err = repo.Count(ctx, 7, activity.KindQuestionAll)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubscriptionCache_ExistsCoherentAfterMutations(t *testing.T) {
	ctx := context.Background()
	store := &countingSubscriptionRepo{}
	repo := NewSubscriptionRepository(store, cache.NewMemory())

	exists, err := repo.Exists(ctx, 7, activity.KindQuestionAll, 1)
	require.NoError(t, err)
	require.False(t, exists)

	seedSubscription(t, repo, 1, 7, activity.KindQuestionAll)

	exists, err = repo.Exists(ctx, 7, activity.KindQuestionAll, 1)
	require.NoError(t, err)
	assert.True(t, exists, "subscribe must invalidate the cached negative")

	_, err = repo.Delete(ctx, subscription.DeleteFilter{TargetID: 7, UserID: 1})
	require.NoError(t, err)

	exists, err = repo.Exists(ctx, 7, activity.KindQuestionAll, 1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSubscriptionCache_DroppingCacheKeepsResults(t *testing.T) {
	ctx := context.Background()
	store := &countingSubscriptionRepo{}
	mem := cache.NewMemory()
	repo := NewSubscriptionRepository(store, mem)

	seedSubscription(t, repo, 1, 7, activity.KindQuestionAll)
	seedSubscription(t, repo, 2, 7, activity.KindQuestionAll)

	before, err := repo.Count(ctx, 7, activity.KindQuestionAll)
	require.NoError(t, err)

	mem.Clear()

	after, err := repo.Count(ctx, 7, activity.KindQuestionAll)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSubscriptionCache_BrokenCacheFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	store := &countingSubscriptionRepo{}
	repo := NewSubscriptionRepository(store, brokenCache{})

	seedSubscription(t, repo, 1, 7, activity.KindQuestionAll)

	count, err := repo.Count(ctx, 7, activity.KindQuestionAll)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	exists, err := repo.Exists(ctx, 7, activity.KindQuestionAll, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	ids, err := repo.SubscriberIDs(ctx, subscription.IDFilter{TargetID: 7})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)
}

func TestSubscriptionCache_SubscriberIDsMemoizedPerTarget(t *testing.T) {
	ctx := context.Background()
	store := &countingSubscriptionRepo{}
	repo := NewSubscriptionRepository(store, cache.NewMemory())

	seedSubscription(t, repo, 1, 7, activity.KindQuestionAll)

	filter := subscription.IDFilter{TargetID: 7, Activities: []activity.Kind{activity.KindQuestionAll}}

	ids, err := repo.SubscriberIDs(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids)

	hits := store.storeHits
	_, err = repo.SubscriberIDs(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, hits, store.storeHits)

	// A new subscriber for the target invalidates the id list.
	seedSubscription(t, repo, 2, 7, activity.KindQuestionAll)
	ids, err = repo.SubscriberIDs(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestSubscriptionCache_AnyTargetBypassesCache(t *testing.T) {
	ctx := context.Background()
	store := &countingSubscriptionRepo{}
	repo := NewSubscriptionRepository(store, cache.NewMemory())

	seedSubscription(t, repo, 1, 7, activity.KindQuestionAll)

	filter := subscription.IDFilter{Activities: []activity.Kind{activity.KindQuestionAll}}

	_, err := repo.SubscriberIDs(ctx, filter)
	require.NoError(t, err)
	hits := store.storeHits

	_, err = repo.SubscriberIDs(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, hits+1, store.storeHits, "any-target queries always hit the store")
}
