package service

import (
	"context"
	"testing"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/database/dbtest"
	"ShortVideo.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileVideo(t *testing.T) {
	ctx := context.Background()
	database := setupVideo(t)
	likes := NewLikeService(database, nil, nil)
	comments := NewCommentService(database, nil, nil)
	dcs := NewDataConsistencyService(database)

	_, err := likes.ToggleLike(ctx, 2, 100)
	require.NoError(t, err)
	_, err = comments.AddComment(ctx, 2, 100, "hi", 0)
	require.NoError(t, err)

	result, err := dcs.ReconcileVideo(ctx, 100)
	require.NoError(t, err)
	assert.True(t, result.IsConsistent)
	assert.False(t, result.Fixed)

	// 人为制造漂移
	dbtest.SetStats(t, database, model.VideoStats{VideoId: 100, ViewCount: 7, LikeCount: 9, CommentCount: 0})

	result, err = dcs.ReconcileVideo(ctx, 100)
	require.NoError(t, err)
	assert.False(t, result.IsConsistent)
	assert.True(t, result.Fixed)
	assert.Equal(t, int64(9), result.StoredLikes)
	assert.Equal(t, int64(1), result.ActualLikes)

	stats := dbtest.GetStats(t, database, 100)
	assert.Equal(t, int64(1), stats.LikeCount)
	assert.Equal(t, int64(1), stats.CommentCount)
	assert.Equal(t, int64(7), stats.ViewCount)

	_, err = dcs.ReconcileVideo(ctx, 999)
	assert.ErrorIs(t, err, errno.NotFoundErr)
}
