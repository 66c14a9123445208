package service

import (
	"context"
	"fmt"

	"ShortVideo.com/cmd/relation/dal/db"
	userdb "ShortVideo.com/cmd/user/dal/db"
	"ShortVideo.com/pkg/cache"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/metrics"
	"ShortVideo.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

type RelationService struct {
	db        *gorm.DB
	locker    cache.EdgeLocker
	publisher mq.EventPublisher
}

func NewRelationService(db *gorm.DB, locker cache.EdgeLocker, publisher mq.EventPublisher) *RelationService {
	if locker == nil {
		locker = cache.NewLocalLocker()
	}
	return &RelationService{db: db, locker: locker, publisher: publisher}
}

// ToggleFollow 已关注则取关 否则关注 返回操作后的状态
func (service *RelationService) ToggleFollow(ctx context.Context, followerId, followingId int64) (bool, error) {
	if followerId == followingId {
		return false, errno.InvalidOperationErr.WithMessage("Cannot follow yourself")
	}
	if followerId <= 0 || followingId <= 0 {
		return false, errno.InvalidArgumentErr.WithMessage("invalid user id")
	}

	unlock, err := service.locker.Lock(ctx, fmt.Sprintf("%sfollow:%d:%d", constants.EdgeLockPrefix, followerId, followingId))
	if err != nil {
		return false, err
	}
	defer unlock()

	var following, changed bool
	err = service.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := userdb.GetUser(ctx, tx, followerId); err != nil {
			return err
		}
		if _, err := userdb.GetUser(ctx, tx, followingId); err != nil {
			return err
		}
		removed, err := db.DeleteFollow(ctx, tx, followerId, followingId)
		if err != nil {
			return err
		}
		if removed {
			following, changed = false, true
			return nil
		}
		created, err := db.CreateFollow(ctx, tx, followerId, followingId)
		if err != nil {
			return err
		}
		following, changed = true, created
		return nil
	})
	if err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "ToggleFollow %d->%d failed: %v", followerId, followingId, err)
		}
		return false, err
	}

	if changed {
		eventType := mq.EventUnfollow
		if following {
			eventType = mq.EventFollow
		}
		metrics.Engagement(eventType, "ok")
		event := mq.NewEngagementEvent(eventType, followerId, 0)
		event.TargetUserID = followingId
		if service.publisher != nil {
			if err := service.publisher.PublishEngagementEvent(ctx, event); err != nil {
				hlog.CtxWarnf(ctx, "publish %s event failed: %v", eventType, err)
			}
		}
	}
	return following, nil
}

func (service *RelationService) IsFollowing(ctx context.Context, followerId, followingId int64) (bool, error) {
	if followerId == 0 || followerId == followingId {
		return false, nil
	}
	return db.IsFollowing(ctx, service.db, followerId, followingId)
}

// FollowingSet 批量判断viewer是否关注了这些用户
func (service *RelationService) FollowingSet(ctx context.Context, followerId int64, userIds []int64) (map[int64]bool, error) {
	return db.FollowingSet(ctx, service.db, followerId, userIds)
}

func (service *RelationService) CountFollowers(ctx context.Context, userId int64) (int64, error) {
	return db.CountFollowers(ctx, service.db, userId)
}

func (service *RelationService) CountFollowing(ctx context.Context, userId int64) (int64, error) {
	return db.CountFollowing(ctx, service.db, userId)
}
