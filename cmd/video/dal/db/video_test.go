package db

import (
	"context"
	"testing"
	"time"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListActiveWithStatsOrderedById(t *testing.T) {
	database := dbtest.New(t)
	dbtest.SeedUser(t, database, 1, model.RoleMember)
	now := time.Now()
	for _, id := range []int64{305, 101, 250, 102} {
		dbtest.SeedVideo(t, database, id, 1, model.VideoStatusActive, now)
	}
	dbtest.SeedVideo(t, database, 200, 1, model.VideoStatusBanned, now)
	dbtest.SetStats(t, database, model.VideoStats{VideoId: 250, LikeCount: 7})

	videos, err := ListActiveWithStats(context.Background(), database)
	require.NoError(t, err)

	ids := make([]int64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.VideoId)
	}
	assert.Equal(t, []int64{101, 102, 250, 305}, ids)
	assert.Equal(t, int64(7), videos[2].LikeCount)
}
