package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qanda-labs/engage-backend-go/internal/domain/activity"
	"github.com/qanda-labs/engage-backend-go/internal/domain/notification"
	"github.com/qanda-labs/engage-backend-go/internal/domain/post"
	"github.com/qanda-labs/engage-backend-go/internal/repository/postgresql"
)

func createTestNotification(t *testing.T, ctx context.Context, repo notification.Repository, recipientID, postID int64, createdAt time.Time) *notification.Notification {
	t.Helper()
	n := &notification.Notification{
		RecipientID: recipientID,
		ActorID:     50,
		Kind:        activity.KindNewAnswer,
		PostID:      postID,
		CreatedAt:   createdAt,
	}
	_, err := repo.Create(ctx, n)
	require.NoError(t, err)
	return n
}

func TestNotificationRepository_Create_Success(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	repo := postgresql.NewNotificationRepository(testSetup.DB)

	n := &notification.Notification{
		RecipientID: 7,
		ActorID:     8,
		Kind:        activity.KindNewAnswer,
		PostID:      200,
	}

	id, err := repo.Create(ctx, n)

	assert.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, id, n.ID)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestNotificationRepository_ListByRecipient_Pagination(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	repo := postgresql.NewNotificationRepository(testSetup.DB)

	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	for i := int64(0); i < 5; i++ {
		createTestNotification(t, ctx, repo, 7, 200+i, base.Add(time.Duration(i)*time.Minute))
	}
	// Another recipient's rows must never leak in.
	createTestNotification(t, ctx, repo, 8, 300, base)

	page1, err := repo.ListByRecipient(ctx, 7, notification.Cursor{}, 2, false)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, int64(204), page1[0].PostID)
	assert.Equal(t, int64(203), page1[1].PostID)

	cursor := notification.Cursor{CreatedAt: page1[1].CreatedAt, ID: page1[1].ID}
	page2, err := repo.ListByRecipient(ctx, 7, cursor, 2, false)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, int64(202), page2[0].PostID)
	assert.Equal(t, int64(201), page2[1].PostID)

	cursor = notification.Cursor{CreatedAt: page2[1].CreatedAt, ID: page2[1].ID}
	page3, err := repo.ListByRecipient(ctx, 7, cursor, 2, false)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, int64(200), page3[0].PostID)
}

func TestNotificationRepository_ListByRecipient_UnreadOnly(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	repo := postgresql.NewNotificationRepository(testSetup.DB)

	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	read := createTestNotification(t, ctx, repo, 7, 200, base)
	createTestNotification(t, ctx, repo, 7, 201, base.Add(time.Minute))

	require.NoError(t, repo.MarkRead(ctx, 7, read.ID))

	unread, err := repo.ListByRecipient(ctx, 7, notification.Cursor{}, 10, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, int64(201), unread[0].PostID)

	all, err := repo.ListByRecipient(ctx, 7, notification.Cursor{}, 10, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	repo := postgresql.NewNotificationRepository(testSetup.DB)

	n := createTestNotification(t, ctx, repo, 7, 200, time.Now())

	require.NoError(t, repo.MarkRead(ctx, 7, n.ID))

	rows, err := repo.ListByRecipient(ctx, 7, notification.Cursor{}, 10, false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsRead)
	assert.NotNil(t, rows[0].ReadAt)

	// Marking again or with the wrong recipient is a no-op, not an error.
	assert.NoError(t, repo.MarkRead(ctx, 7, n.ID))
	assert.NoError(t, repo.MarkRead(ctx, 999, n.ID))
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	repo := postgresql.NewNotificationRepository(testSetup.DB)

	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	createTestNotification(t, ctx, repo, 7, 200, base)
	createTestNotification(t, ctx, repo, 7, 201, base.Add(time.Minute))
	other := createTestNotification(t, ctx, repo, 8, 300, base)

	require.NoError(t, repo.MarkAllRead(ctx, 7))

	count, err := repo.UnreadCount(ctx, 7)
	assert.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.UnreadCount(ctx, other.RecipientID)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNotificationRepository_UnreadCount(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	repo := postgresql.NewNotificationRepository(testSetup.DB)

	count, err := repo.UnreadCount(ctx, 7)
	assert.NoError(t, err)
	assert.Zero(t, count)

	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	createTestNotification(t, ctx, repo, 7, 200, base)
	read := createTestNotification(t, ctx, repo, 7, 201, base.Add(time.Minute))
	require.NoError(t, repo.MarkRead(ctx, 7, read.ID))

	count, err = repo.UnreadCount(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	repo := postgresql.NewPostRepository(testSetup.DB)

	question := &post.Post{
		AuthorID: 7,
		Type:     post.TypeQuestion,
		Title:    "How do I merge two maps?",
	}
	questionID, err := repo.Create(ctx, question)
	require.NoError(t, err)

	answer := &post.Post{
		AuthorID: 8,
		Type:     post.TypeAnswer,
		ParentID: questionID,
	}
	answerID, err := repo.Create(ctx, answer)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, answerID)
	assert.NoError(t, err)
	assert.Equal(t, post.TypeAnswer, got.Type)
	assert.Equal(t, questionID, got.ParentID)
	assert.Equal(t, int64(8), got.AuthorID)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	repo := postgresql.NewPostRepository(testSetup.DB)

	_, err := repo.GetByID(ctx, 999999)

	assert.ErrorIs(t, err, post.ErrPostNotFound)
}
