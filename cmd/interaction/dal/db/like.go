package db

import (
	"context"

	"ShortVideo.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeleteLike 删除点赞关系 返回是否真的删除了一行
func DeleteLike(ctx context.Context, tx *gorm.DB, userId, videoId int64) (bool, error) {
	res := tx.WithContext(ctx).Where("user_id = ? AND video_id = ?", userId, videoId).Delete(&model.VideoLike{})
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "dao.DeleteLike failed")
	}
	return res.RowsAffected > 0, nil
}

// CreateLike 插入点赞关系 已存在时不报错 返回是否新插入
func CreateLike(ctx context.Context, tx *gorm.DB, userId, videoId int64) (bool, error) {
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.VideoLike{UserId: userId, VideoId: videoId})
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "dao.CreateLike failed")
	}
	return res.RowsAffected > 0, nil
}

func IsLiked(ctx context.Context, tx *gorm.DB, userId, videoId int64) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.VideoLike{}).
		Where("user_id = ? AND video_id = ?", userId, videoId).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "dao.IsLiked failed")
	}
	return count > 0, nil
}

// LikedVideoIds 批量查询用户点赞过的视频
func LikedVideoIds(ctx context.Context, tx *gorm.DB, userId int64, videoIds []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(videoIds))
	if userId == 0 || len(videoIds) == 0 {
		return liked, nil
	}
	var ids []int64
	err := tx.WithContext(ctx).Model(&model.VideoLike{}).
		Where("user_id = ? AND video_id IN ?", userId, videoIds).
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, errors.WithMessage(err, "dao.LikedVideoIds failed")
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// CountLikes 点赞关系的真实数量 用于对账
func CountLikes(ctx context.Context, tx *gorm.DB, videoId int64) (int64, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&model.VideoLike{}).Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return 0, errors.WithMessage(err, "dao.CountLikes failed")
	}
	return count, nil
}
