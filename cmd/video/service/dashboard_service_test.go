package service

import (
	"context"
	"testing"
	"time"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/database/dbtest"
	"ShortVideo.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 0.0, EngagementRate(5, 5, 0))
	assert.InDelta(t, 20.0, EngagementRate(15, 5, 100), 1e-9)
	assert.InDelta(t, 300.0, EngagementRate(2, 1, 1), 1e-9)
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	database := dbtest.New(t)
	dbtest.SeedUser(t, database, 1, model.RoleMember)
	dbtest.SeedUser(t, database, 2, model.RoleMember)
	dbtest.SeedUser(t, database, 3, model.RoleMember)
	now := time.Now()

	// 12个视频 观看数依次递增 其中一个被封禁
	for i := int64(0); i < 12; i++ {
		status := model.VideoStatusActive
		if i == 11 {
			status = model.VideoStatusBanned
		}
		dbtest.SeedVideo(t, database, 100+i, 1, status, now)
		dbtest.SetStats(t, database, model.VideoStats{
			VideoId:      100 + i,
			ViewCount:    (i + 1) * 10,
			LikeCount:    i,
			CommentCount: 1,
			ShareCount:   2,
		})
	}
	dbtest.SeedVideo(t, database, 500, 2, model.VideoStatusActive, now)
	dbtest.SetStats(t, database, model.VideoStats{VideoId: 500, ViewCount: 9999})
	require.NoError(t, database.Create(&model.Follow{FollowerId: 2, FollowingId: 1}).Error)
	require.NoError(t, database.Create(&model.Follow{FollowerId: 3, FollowingId: 1}).Error)

	svc := NewDashboardService(database)
	dashboard, err := svc.GetDashboard(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(12), dashboard.TotalVideos)
	assert.Equal(t, int64(780), dashboard.TotalViews)
	assert.Equal(t, int64(66), dashboard.TotalLikes)
	assert.Equal(t, int64(12), dashboard.TotalComments)
	assert.Equal(t, int64(24), dashboard.TotalShares)
	assert.Equal(t, int64(2), dashboard.FollowerCount)
	assert.InDelta(t, 78.0/780.0*100, dashboard.EngagementRate, 1e-9)

	require.Len(t, dashboard.TopVideos, 10)
	assert.Equal(t, int64(111), dashboard.TopVideos[0].VideoId)
	assert.Equal(t, model.VideoStatusBanned, dashboard.TopVideos[0].Status)
	assert.Equal(t, int64(102), dashboard.TopVideos[9].VideoId)
	assert.InDelta(t, 12.0/120.0*100, dashboard.TopVideos[0].EngagementRate, 1e-9)
}

func TestGetDashboardWithoutViews(t *testing.T) {
	ctx := context.Background()
	database := dbtest.New(t)
	dbtest.SeedUser(t, database, 1, model.RoleMember)
	dbtest.SeedVideo(t, database, 100, 1, model.VideoStatusPending, time.Now())
	dbtest.SeedVideo(t, database, 101, 1, model.VideoStatusActive, time.Now())
	dbtest.SetStats(t, database, model.VideoStats{VideoId: 100, LikeCount: 3, CommentCount: 2})

	dashboard, err := NewDashboardService(database).GetDashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dashboard.EngagementRate)
	require.Len(t, dashboard.TopVideos, 2)
	// 观看数相同按id排序
	assert.Equal(t, int64(100), dashboard.TopVideos[0].VideoId)
	for _, v := range dashboard.TopVideos {
		assert.Equal(t, 0.0, v.EngagementRate)
	}

	dbtest.SeedUser(t, database, 2, model.RoleMember)
	empty, err := NewDashboardService(database).GetDashboard(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalVideos)
	assert.NotNil(t, empty.TopVideos)

	_, err = NewDashboardService(database).GetDashboard(ctx, 42)
	assert.ErrorIs(t, err, errno.NotFoundErr)
}
