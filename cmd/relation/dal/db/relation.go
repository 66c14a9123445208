package db

import (
	"context"

	"ShortVideo.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeleteFollow 返回是否真的删除了关注关系
func DeleteFollow(ctx context.Context, tx *gorm.DB, followerId, followingId int64) (bool, error) {
	res := tx.WithContext(ctx).Where("follower_id = ? AND following_id = ?", followerId, followingId).Delete(&model.Follow{})
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "dao.DeleteFollow failed")
	}
	return res.RowsAffected > 0, nil
}

// CreateFollow 关系已存在时不报错 返回是否新插入
func CreateFollow(ctx context.Context, tx *gorm.DB, followerId, followingId int64) (bool, error) {
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Follow{FollowerId: followerId, FollowingId: followingId})
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "dao.CreateFollow failed")
	}
	return res.RowsAffected > 0, nil
}

func IsFollowing(ctx context.Context, tx *gorm.DB, followerId, followingId int64) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerId, followingId).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "dao.IsFollowing failed")
	}
	return count > 0, nil
}

// FollowingSet 批量查询followerId关注了userIds中的哪些人
func FollowingSet(ctx context.Context, tx *gorm.DB, followerId int64, userIds []int64) (map[int64]bool, error) {
	set := make(map[int64]bool, len(userIds))
	if followerId == 0 || len(userIds) == 0 {
		return set, nil
	}
	var ids []int64
	err := tx.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerId, userIds).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, errors.WithMessage(err, "dao.FollowingSet failed")
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// CountFollowers 粉丝数直接按关系表计数
func CountFollowers(ctx context.Context, tx *gorm.DB, userId int64) (int64, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&model.Follow{}).Where("following_id = ?", userId).Count(&count).Error; err != nil {
		return 0, errors.WithMessage(err, "dao.CountFollowers failed")
	}
	return count, nil
}

func CountFollowing(ctx context.Context, tx *gorm.DB, userId int64) (int64, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&model.Follow{}).Where("follower_id = ?", userId).Count(&count).Error; err != nil {
		return 0, errors.WithMessage(err, "dao.CountFollowing failed")
	}
	return count, nil
}
