package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
	"github.com/qanda-labs/engage-backend-go/internal/domain/notification"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create persists a notification and returns its id.
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) (int64, error) {
	q := GetQuerier(ctx, r.db)

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO notifications (recipient_id, actor_id, kind, post_id, comment_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		n.RecipientID,
		n.ActorID,
		string(n.Kind),
		n.PostID,
		n.CommentID,
		n.IsRead,
		n.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create notification: %w", err)
	}

	n.ID = id
	return id, nil
}

// ListByRecipient returns up to limit notifications for a recipient,
// newest first. A non-zero cursor resumes strictly after the cursor
// position; ties on created_at are broken by id.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID int64, cursor notification.Cursor, limit int, unreadOnly bool) ([]*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, recipient_id, actor_id, kind, post_id, comment_id, is_read, read_at, created_at
		FROM notifications
		WHERE recipient_id = $1
	`
	args := []interface{}{recipientID}

	if unreadOnly {
		query += " AND is_read = false"
	}
	if !cursor.IsZero() {
		args = append(args, cursor.CreatedAt, cursor.ID)
		query += fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		var kind string

		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.ActorID,
			&kind,
			&n.PostID,
			&n.CommentID,
			&n.IsRead,
			&n.ReadAt,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		n.Kind = activity.Kind(kind)
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

// MarkRead marks one notification as read. Absent or already-read rows
// leave the statement affecting zero rows, which is still success.
func (r *notificationRepository) MarkRead(ctx context.Context, recipientID int64, id int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = true, read_at = $1
		WHERE id = $2 AND recipient_id = $3 AND is_read = false
	`

	if _, err := q.Exec(ctx, query, time.Now(), id, recipientID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	return nil
}

// MarkAllRead marks all notifications as read for a recipient.
func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = true, read_at = $1
		WHERE recipient_id = $2 AND is_read = false
	`

	if _, err := q.Exec(ctx, query, time.Now(), recipientID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}

// UnreadCount returns the count of unread notifications for a recipient.
func (r *notificationRepository) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`

	var count int
	if err := q.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
