package cached

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/qanda-labs/engage-backend-go/internal/domain/notification"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/cache"
)

type notificationCache struct {
	repo  notification.Repository
	cache cache.Cache
}

// NewNotificationRepository wraps repo with an unread-count cache.
// Feed pages are not memoized; the count is the read-heavy display
// path (rendered on every page load of the host).
func NewNotificationRepository(repo notification.Repository, c cache.Cache) notification.Repository {
	return &notificationCache{repo: repo, cache: c}
}

func unreadKey(recipientID int64) string {
	return fmt.Sprintf("notif:unread:%d", recipientID)
}

// dropUnread deletes the cached unread count for a recipient. Called
// only after the store write has committed; failures are logged and
// swallowed since the next mutation invalidates again.
func (n *notificationCache) dropUnread(ctx context.Context, recipientID int64) {
	if err := n.cache.Delete(ctx, unreadKey(recipientID)); err != nil {
		log.Printf("[NotificationCache] invalidation failed for recipient %d: %v", recipientID, err)
	}
}

func (n *notificationCache) Create(ctx context.Context, notif *notification.Notification) (int64, error) {
	id, err := n.repo.Create(ctx, notif)
	if err != nil {
		return 0, err
	}
	n.dropUnread(ctx, notif.RecipientID)
	return id, nil
}

func (n *notificationCache) ListByRecipient(ctx context.Context, recipientID int64, cursor notification.Cursor, limit int, unreadOnly bool) ([]*notification.Notification, error) {
	return n.repo.ListByRecipient(ctx, recipientID, cursor, limit, unreadOnly)
}

func (n *notificationCache) MarkRead(ctx context.Context, recipientID int64, id int64) error {
	if err := n.repo.MarkRead(ctx, recipientID, id); err != nil {
		return err
	}
	n.dropUnread(ctx, recipientID)
	return nil
}

func (n *notificationCache) MarkAllRead(ctx context.Context, recipientID int64) error {
	if err := n.repo.MarkAllRead(ctx, recipientID); err != nil {
		return err
	}
	n.dropUnread(ctx, recipientID)
	return nil
}

func (n *notificationCache) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	key := unreadKey(recipientID)

	value, hit, err := n.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[NotificationCache] read failed for %s: %v", key, err)
	} else if hit {
		if count, convErr := strconv.Atoi(string(value)); convErr == nil {
			return count, nil
		}
		log.Printf("[NotificationCache] corrupt entry at %s", key)
	}

	count, err := n.repo.UnreadCount(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	if err := n.cache.Set(ctx, key, []byte(strconv.Itoa(count))); err != nil {
		log.Printf("[NotificationCache] write failed for %s: %v", key, err)
	}
	return count, nil
}
