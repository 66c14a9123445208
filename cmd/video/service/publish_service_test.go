package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/database/dbtest"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/oss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("/tmp/upload/clip.mp4")
	assert.True(t, strings.HasSuffix(key, "_clip.mp4"))
	assert.Len(t, key, 36+len("_clip.mp4"))
	assert.NotEqual(t, key, ObjectKey("clip.mp4"))
}

func TestUploadPublishAndStream(t *testing.T) {
	ctx := context.Background()
	database := dbtest.New(t)
	dbtest.SeedUser(t, database, 1, model.RoleMember)
	dbtest.SeedUser(t, database, 2, model.RoleMember)
	store := oss.NewMemoryStore()
	svc := NewVideoService(database, store)

	content := "fake video bytes"
	video, err := svc.UploadVideo(ctx, 1, UploadMeta{Title: " first ", FileName: "clip.mp4", ContentType: "video/mp4"},
		strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, model.VideoStatusPending, video.Status)
	assert.Equal(t, "first", video.Title)
	assert.Zero(t, dbtest.GetStats(t, database, video.VideoId).ViewCount)

	_, err = svc.PublishVideo(ctx, 2, video.VideoId)
	assert.ErrorIs(t, err, errno.ForbiddenErr)

	published, err := svc.PublishVideo(ctx, 1, video.VideoId)
	require.NoError(t, err)
	assert.Equal(t, model.VideoStatusActive, published.Status)

	_, err = svc.PublishVideo(ctx, 1, video.VideoId)
	assert.ErrorIs(t, err, errno.InvalidOperationErr)

	_, body, size, err := svc.OpenStream(ctx, video.VideoId)
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.Equal(t, int64(len(content)), size)
}

func TestUploadVideoValidation(t *testing.T) {
	ctx := context.Background()
	database := dbtest.New(t)
	dbtest.SeedUser(t, database, 1, model.RoleMember)
	banned := dbtest.SeedUser(t, database, 2, model.RoleMember)
	require.NoError(t, database.Model(banned).Update("status", model.UserStatusBanned).Error)
	svc := NewVideoService(database, oss.NewMemoryStore())

	_, err := svc.UploadVideo(ctx, 1, UploadMeta{Title: "  ", FileName: "a.mp4"}, strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, errno.InvalidArgumentErr)

	_, err = svc.UploadVideo(ctx, 1, UploadMeta{Title: "t", FileName: "a.mp4"}, strings.NewReader(""), 0)
	assert.ErrorIs(t, err, errno.InvalidArgumentErr)

	_, err = svc.UploadVideo(ctx, 2, UploadMeta{Title: "t", FileName: "a.mp4"}, strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, errno.ForbiddenErr)

	_, err = svc.UploadVideo(ctx, 9, UploadMeta{Title: "t", FileName: "a.mp4"}, strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, errno.NotFoundErr)
}

func TestOpenStreamHidesBannedVideos(t *testing.T) {
	ctx := context.Background()
	database := dbtest.New(t)
	dbtest.SeedUser(t, database, 1, model.RoleMember)
	dbtest.SeedVideo(t, database, 100, 1, model.VideoStatusBanned, time.Now())
	svc := NewVideoService(database, oss.NewMemoryStore())

	_, _, _, err := svc.OpenStream(ctx, 100)
	assert.ErrorIs(t, err, errno.NotFoundErr)

	_, _, _, err = svc.OpenStream(ctx, 404)
	assert.ErrorIs(t, err, errno.NotFoundErr)
}
