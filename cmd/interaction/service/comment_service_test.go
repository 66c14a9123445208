package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"ShortVideo.com/cmd/interaction/infras/redis"
	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/database/dbtest"
	"ShortVideo.com/pkg/errno"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	database := setupVideo(t)
	dbtest.SeedVideo(t, database, 101, 1, model.VideoStatusActive, time.Now())
	svc := NewCommentService(database, nil, nil)

	top, err := svc.AddComment(ctx, 2, 100, "  nice video  ", 0)
	require.NoError(t, err)
	assert.Equal(t, "nice video", top.Content)
	assert.Zero(t, top.ParentId)

	reply, err := svc.AddComment(ctx, 3, 100, "agreed", top.CommentId)
	require.NoError(t, err)
	assert.Equal(t, top.CommentId, reply.ParentId)
	assert.Equal(t, top.CommentId, reply.ReplyToCommentId)

	t.Run("reply to a reply is attached to the top level comment", func(t *testing.T) {
		nested, err := svc.AddComment(ctx, 2, 100, "thanks", reply.CommentId)
		require.NoError(t, err)
		assert.Equal(t, top.CommentId, nested.ParentId)
		assert.Equal(t, reply.CommentId, nested.ReplyToCommentId)
	})

	assert.Equal(t, int64(3), dbtest.GetStats(t, database, 100).CommentCount)

	t.Run("validation", func(t *testing.T) {
		_, err := svc.AddComment(ctx, 2, 100, "   ", 0)
		assert.ErrorIs(t, err, errno.InvalidArgumentErr)

		_, err = svc.AddComment(ctx, 2, 100, strings.Repeat("好", 501), 0)
		assert.ErrorIs(t, err, errno.InvalidArgumentErr)

		_, err = svc.AddComment(ctx, 2, 100, strings.Repeat("好", 500), 0)
		assert.NoError(t, err)

		_, err = svc.AddComment(ctx, 2, 999, "hello", 0)
		assert.ErrorIs(t, err, errno.NotFoundErr)

		_, err = svc.AddComment(ctx, 2, 100, "hello", 424242)
		assert.ErrorIs(t, err, errno.NotFoundErr)

		_, err = svc.AddComment(ctx, 2, 101, "wrong video", top.CommentId)
		assert.ErrorIs(t, err, errno.InvalidArgumentErr)
	})

	t.Run("missing account", func(t *testing.T) {
		before := dbtest.GetStats(t, database, 100).CommentCount
		_, err := svc.AddComment(ctx, 999, 100, "hi", 0)
		assert.ErrorIs(t, err, errno.NotFoundErr)
		assert.Equal(t, before, dbtest.GetStats(t, database, 100).CommentCount)
	})
}

func TestAddCommentRateLimited(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	database := setupVideo(t)
	svc := NewCommentService(database, redis.NewCommentRateLimiter(client, 2, time.Minute), nil)

	for i := 0; i < 2; i++ {
		_, err := svc.AddComment(ctx, 2, 100, "spam", 0)
		require.NoError(t, err)
	}
	_, err := svc.AddComment(ctx, 2, 100, "spam", 0)
	assert.ErrorIs(t, err, errno.TooManyRequestsErr)
	assert.Equal(t, int64(2), dbtest.GetStats(t, database, 100).CommentCount)

	// redis不可用时放行
	mr.Close()
	_, err = svc.AddComment(ctx, 3, 100, "still works", 0)
	assert.NoError(t, err)
}

func TestListComments(t *testing.T) {
	ctx := context.Background()
	database := setupVideo(t)
	svc := NewCommentService(database, nil, nil)

	first, err := svc.AddComment(ctx, 2, 100, "first", 0)
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, 3, 100, "second", 0)
	require.NoError(t, err)
	r1, err := svc.AddComment(ctx, 3, 100, "reply one", first.CommentId)
	require.NoError(t, err)
	r2, err := svc.AddComment(ctx, 2, 100, "reply two", r1.CommentId)
	require.NoError(t, err)

	t.Run("nested", func(t *testing.T) {
		nodes, err := svc.ListComments(ctx, 100, true)
		require.NoError(t, err)
		require.Len(t, nodes, 2)
		assert.Equal(t, second.CommentId, nodes[0].CommentId)
		assert.Empty(t, nodes[0].Replies)
		assert.Equal(t, first.CommentId, nodes[1].CommentId)
		require.Len(t, nodes[1].Replies, 2)
		assert.Equal(t, r1.CommentId, nodes[1].Replies[0].CommentId)
		assert.Equal(t, r2.CommentId, nodes[1].Replies[1].CommentId)
	})

	t.Run("flat", func(t *testing.T) {
		nodes, err := svc.ListComments(ctx, 100, false)
		require.NoError(t, err)
		require.Len(t, nodes, 4)
		assert.Equal(t, r2.CommentId, nodes[0].CommentId)
		assert.Equal(t, first.CommentId, nodes[3].CommentId)
	})

	t.Run("missing video", func(t *testing.T) {
		_, err := svc.ListComments(ctx, 999, true)
		assert.ErrorIs(t, err, errno.NotFoundErr)
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	database := setupVideo(t)
	svc := NewCommentService(database, nil, nil)

	top, err := svc.AddComment(ctx, 2, 100, "top", 0)
	require.NoError(t, err)
	reply, err := svc.AddComment(ctx, 3, 100, "reply", top.CommentId)
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, 4, 100, "reply again", reply.CommentId)
	require.NoError(t, err)
	other, err := svc.AddComment(ctx, 4, 100, "other", 0)
	require.NoError(t, err)
	require.Equal(t, int64(4), dbtest.GetStats(t, database, 100).CommentCount)

	assert.ErrorIs(t, svc.DeleteComment(ctx, 3, top.CommentId), errno.ForbiddenErr)
	assert.ErrorIs(t, svc.DeleteComment(ctx, 2, 424242), errno.NotFoundErr)

	t.Run("replies are removed with their parent", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(ctx, 2, top.CommentId))
		assert.Equal(t, int64(1), dbtest.GetStats(t, database, 100).CommentCount)

		nodes, err := svc.ListComments(ctx, 100, false)
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, other.CommentId, nodes[0].CommentId)
	})
}
