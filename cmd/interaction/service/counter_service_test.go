package service

import (
	"context"
	"sync"
	"testing"

	"ShortVideo.com/pkg/database/dbtest"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementView(t *testing.T) {
	ctx := context.Background()
	database := setupVideo(t)
	pub := &mq.MemoryPublisher{}
	svc := NewCounterService(database, pub)

	// 观看时长和是否看完都不影响计数
	require.NoError(t, svc.IncrementView(ctx, 2, 100, 0, false))
	require.NoError(t, svc.IncrementView(ctx, 2, 100, 30, true))
	require.NoError(t, svc.IncrementView(ctx, 0, 100, 1, false))
	assert.Equal(t, int64(3), dbtest.GetStats(t, database, 100).ViewCount)

	events := pub.EngagementEvents()
	require.Len(t, events, 3)
	assert.Equal(t, int64(30), events[1].WatchDuration)
	assert.True(t, events[1].Completed)

	assert.ErrorIs(t, svc.IncrementView(ctx, 2, 100, -1, false), errno.InvalidArgumentErr)
	assert.ErrorIs(t, svc.IncrementView(ctx, 2, 999, 0, false), errno.NotFoundErr)
}

func TestIncrementViewConcurrent(t *testing.T) {
	ctx := context.Background()
	database := setupVideo(t)
	svc := NewCounterService(database, nil)

	const views = 30
	var wg sync.WaitGroup
	for i := 0; i < views; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.IncrementView(ctx, 2, 100, 5, false); err != nil {
				t.Errorf("increment view: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(views), dbtest.GetStats(t, database, 100).ViewCount)
}

func TestIncrementShare(t *testing.T) {
	ctx := context.Background()
	database := setupVideo(t)
	svc := NewCounterService(database, nil)

	link, err := svc.IncrementShare(ctx, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, "videoapp://video/100", link)
	assert.Equal(t, int64(1), dbtest.GetStats(t, database, 100).ShareCount)

	_, err = svc.IncrementShare(ctx, 2, 999)
	assert.ErrorIs(t, err, errno.NotFoundErr)
}

func TestRecordCommentCountDelta(t *testing.T) {
	ctx := context.Background()
	database := setupVideo(t)
	svc := NewCounterService(database, nil)

	require.NoError(t, svc.RecordCommentCountDelta(ctx, 100, 2))
	assert.Equal(t, int64(2), dbtest.GetStats(t, database, 100).CommentCount)

	require.NoError(t, svc.RecordCommentCountDelta(ctx, 100, -5))
	assert.Equal(t, int64(0), dbtest.GetStats(t, database, 100).CommentCount)

	stats, err := svc.GetStats(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.CommentCount)
}
