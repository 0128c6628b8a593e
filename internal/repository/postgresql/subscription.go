package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
	"github.com/qanda-labs/engage-backend-go/internal/domain/subscription"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/database"
)

type subscriptionRepository struct {
	db *database.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *database.DB) subscription.Repository {
	return &subscriptionRepository{db: db}
}

// Create persists one subscription row. Duplicate (user, target, activity)
// rows are allowed at this layer; idempotence is enforced by callers.
func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) (int64, error) {
	q := GetQuerier(ctx, r.db)

	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO subscribers (user_id, target_id, question_id, activity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		sub.UserID,
		sub.TargetID,
		sub.QuestionID,
		string(sub.Activity),
		sub.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create subscription: %w", err)
	}

	sub.ID = id
	return id, nil
}

// Delete removes every subscription matching the filter. Filters are
// conjunctive; zero-value fields match any row.
func (r *subscriptionRepository) Delete(ctx context.Context, filter subscription.DeleteFilter) (int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"target_id = $1"}
	args := []interface{}{filter.TargetID}

	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Activity != activity.Any {
		args = append(args, string(filter.Activity))
		conditions = append(conditions, fmt.Sprintf("activity = $%d", len(args)))
	}

	query := fmt.Sprintf("DELETE FROM subscribers WHERE %s", strings.Join(conditions, " AND "))

	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete subscriptions: %w", err)
	}

	return result.RowsAffected(), nil
}

// Exists reports whether userID is subscribed to (targetID, kind).
func (r *subscriptionRepository) Exists(ctx context.Context, targetID int64, kind activity.Kind, userID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM subscribers
			WHERE target_id = $1 AND activity = $2 AND user_id = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, targetID, string(kind), userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}

	return exists, nil
}

// Count returns the number of subscriber rows for (targetID, kind).
func (r *subscriptionRepository) Count(ctx context.Context, targetID int64, kind activity.Kind) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM subscribers WHERE target_id = $1 AND activity = $2`

	var count int
	if err := q.QueryRow(ctx, query, targetID, string(kind)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	return count, nil
}

// SubscriberIDs returns the distinct user ids matching the filter,
// ordered by user id. Activities are combined with OR.
func (r *subscriptionRepository) SubscriberIDs(ctx context.Context, filter subscription.IDFilter) ([]int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}

	if filter.TargetID != 0 {
		args = append(args, filter.TargetID)
		conditions = append(conditions, fmt.Sprintf("target_id = $%d", len(args)))
	}
	if filter.QuestionID != 0 {
		args = append(args, filter.QuestionID)
		conditions = append(conditions, fmt.Sprintf("question_id = $%d", len(args)))
	}
	if len(filter.Activities) > 0 {
		placeholders := make([]string, len(filter.Activities))
		for i, kind := range filter.Activities {
			args = append(args, string(kind))
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("activity IN (%s)", strings.Join(placeholders, ", ")))
	}

	query := "SELECT user_id FROM subscribers"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY user_id ORDER BY user_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriber ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// List returns up to limit subscriptions for (targetID, kind), most
// recent first.
func (r *subscriptionRepository) List(ctx context.Context, targetID int64, kind activity.Kind, limit int) ([]*subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, target_id, question_id, activity, created_at
		FROM subscribers
		WHERE target_id = $1 AND activity = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, targetID, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*subscription.Subscription
	for rows.Next() {
		var sub subscription.Subscription
		var kind string

		if err := rows.Scan(
			&sub.ID,
			&sub.UserID,
			&sub.TargetID,
			&sub.QuestionID,
			&kind,
			&sub.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}

		sub.Activity = activity.Kind(kind)
		subs = append(subs, &sub)
	}

	return subs, nil
}
