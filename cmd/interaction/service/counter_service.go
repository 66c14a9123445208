package service

import (
	"context"
	"strconv"

	"ShortVideo.com/cmd/interaction/dal/db"
	"ShortVideo.com/cmd/model"
	videodb "ShortVideo.com/cmd/video/dal/db"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

// CounterService 浏览 分享 评论数的原子增量
type CounterService struct {
	db        *gorm.DB
	publisher mq.EventPublisher
}

func NewCounterService(db *gorm.DB, publisher mq.EventPublisher) *CounterService {
	return &CounterService{db: db, publisher: publisher}
}

// IncrementView 每次调用都计一次浏览 观看时长只随事件发布
func (s *CounterService) IncrementView(ctx context.Context, userId, videoId, watchDuration int64, completed bool) error {
	if watchDuration < 0 {
		return errno.InvalidArgumentErr.WithMessage("watch duration must not be negative")
	}
	if err := s.applyDelta(ctx, videoId, constants.ViewCountColumn, 1); err != nil {
		return err
	}
	event := mq.NewEngagementEvent(mq.EventView, userId, videoId)
	event.Delta = 1
	event.WatchDuration = watchDuration
	event.Completed = completed
	publish(ctx, s.publisher, event)
	return nil
}

// IncrementShare 返回视频的分享链接
func (s *CounterService) IncrementShare(ctx context.Context, userId, videoId int64) (string, error) {
	if err := s.applyDelta(ctx, videoId, constants.ShareCountColumn, 1); err != nil {
		return "", err
	}
	event := mq.NewEngagementEvent(mq.EventShare, userId, videoId)
	event.Delta = 1
	publish(ctx, s.publisher, event)
	return ShareLink(videoId), nil
}

func ShareLink(videoId int64) string {
	return constants.ShareLinkPrefix + strconv.FormatInt(videoId, 10)
}

// RecordCommentCountDelta 直接修改评论数 结果不小于0
func (s *CounterService) RecordCommentCountDelta(ctx context.Context, videoId, delta int64) error {
	return s.applyDelta(ctx, videoId, constants.CommentCountColumn, delta)
}

func (s *CounterService) GetStats(ctx context.Context, videoId int64) (*model.VideoStats, error) {
	if _, err := videodb.GetVideo(ctx, s.db, videoId); err != nil {
		return nil, err
	}
	return db.GetStats(ctx, s.db, videoId)
}

func (s *CounterService) applyDelta(ctx context.Context, videoId int64, column string, delta int64) error {
	if videoId <= 0 {
		return errno.InvalidArgumentErr.WithMessage("invalid video id")
	}
	if _, err := videodb.GetVideo(ctx, s.db, videoId); err != nil {
		return err
	}
	if err := db.ApplyStatsDelta(ctx, s.db, videoId, column, delta); err != nil {
		hlog.CtxErrorf(ctx, "apply %s delta %d to video %d failed: %v", column, delta, videoId, err)
		return err
	}
	return nil
}
