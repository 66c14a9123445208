package service

import (
	"context"
	"fmt"

	"ShortVideo.com/cmd/interaction/dal/db"
	userdb "ShortVideo.com/cmd/user/dal/db"
	videodb "ShortVideo.com/cmd/video/dal/db"
	"ShortVideo.com/pkg/cache"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

// LikeService 点赞关系和like_count在同一个事务中修改
type LikeService struct {
	db        *gorm.DB
	locker    cache.EdgeLocker
	publisher mq.EventPublisher
}

// NewLikeService 创建点赞服务 locker为空时使用进程内锁
func NewLikeService(db *gorm.DB, locker cache.EdgeLocker, publisher mq.EventPublisher) *LikeService {
	if locker == nil {
		locker = cache.NewLocalLocker()
	}
	return &LikeService{db: db, locker: locker, publisher: publisher}
}

func likeLockKey(userId, videoId int64) string {
	return fmt.Sprintf("%slike:%d:%d", constants.EdgeLockPrefix, userId, videoId)
}

// ToggleLike 已点赞则取消 否则点赞 返回操作后的状态
func (service *LikeService) ToggleLike(ctx context.Context, userId, videoId int64) (bool, error) {
	if userId <= 0 || videoId <= 0 {
		return false, errno.InvalidArgumentErr.WithMessage("invalid user or video id")
	}

	unlock, err := service.locker.Lock(ctx, likeLockKey(userId, videoId))
	if err != nil {
		return false, err
	}
	defer unlock()

	var liked, changed bool
	err = service.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := userdb.GetUser(ctx, tx, userId); err != nil {
			return err
		}
		if _, err := videodb.GetVideo(ctx, tx, videoId); err != nil {
			return err
		}
		removed, err := db.DeleteLike(ctx, tx, userId, videoId)
		if err != nil {
			return err
		}
		if removed {
			liked, changed = false, true
			return db.ApplyStatsDelta(ctx, tx, videoId, constants.LikeCountColumn, -1)
		}

		created, err := db.CreateLike(ctx, tx, userId, videoId)
		if err != nil {
			return err
		}
		liked = true
		// 并发插入已经生效 计数由插入成功的一方负责
		if !created {
			return nil
		}
		changed = true
		return db.ApplyStatsDelta(ctx, tx, videoId, constants.LikeCountColumn, 1)
	})
	if err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "ToggleLike user=%d video=%d failed: %v", userId, videoId, err)
		}
		return false, err
	}

	if changed {
		eventType := mq.EventUnlike
		delta := int64(-1)
		if liked {
			eventType, delta = mq.EventLike, 1
		}
		event := mq.NewEngagementEvent(eventType, userId, videoId)
		event.Delta = delta
		publish(ctx, service.publisher, event)
	}
	return liked, nil
}

func (service *LikeService) IsLiked(ctx context.Context, userId, videoId int64) (bool, error) {
	if userId == 0 {
		return false, nil
	}
	return db.IsLiked(ctx, service.db, userId, videoId)
}

// LikedVideoIds 批量判断viewer是否点赞过这些视频
func (service *LikeService) LikedVideoIds(ctx context.Context, userId int64, videoIds []int64) (map[int64]bool, error) {
	return db.LikedVideoIds(ctx, service.db, userId, videoIds)
}
