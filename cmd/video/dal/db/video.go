package db

import (
	"context"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const statsColumns = "videos.*, " +
	"COALESCE(video_stats.view_count, 0) AS view_count, " +
	"COALESCE(video_stats.like_count, 0) AS like_count, " +
	"COALESCE(video_stats.comment_count, 0) AS comment_count, " +
	"COALESCE(video_stats.share_count, 0) AS share_count"

// InsertVideo 插入视频和全零的计数行 调用方负责事务
func InsertVideo(ctx context.Context, tx *gorm.DB, video *model.Video) error {
	if err := tx.WithContext(ctx).Create(video).Error; err != nil {
		return errors.WithMessage(err, "dao.InsertVideo failed")
	}
	if err := tx.WithContext(ctx).Create(&model.VideoStats{VideoId: video.VideoId}).Error; err != nil {
		return errors.WithMessage(err, "dao.InsertVideoStats failed")
	}
	return nil
}

// GetVideo 视频不存在时返回NotFoundErr
func GetVideo(ctx context.Context, tx *gorm.DB, videoId int64) (*model.Video, error) {
	var video model.Video
	err := tx.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoId).Take(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetVideo failed")
	}
	return &video, nil
}

// UpdateVideoStatus 仅当当前状态属于from时才修改 返回受影响行数
func UpdateVideoStatus(ctx context.Context, tx *gorm.DB, videoId int64, from []string, to string) (int64, error) {
	res := tx.WithContext(ctx).Model(&model.Video{}).
		Where("video_id = ? AND status IN ?", videoId, from).
		Update("status", to)
	if res.Error != nil {
		return 0, errors.WithMessage(res.Error, "dao.UpdateVideoStatus failed")
	}
	return res.RowsAffected, nil
}

// BanVideosByOwner 一条UPDATE封禁作者的全部视频
func BanVideosByOwner(ctx context.Context, tx *gorm.DB, userId int64) (int64, error) {
	res := tx.WithContext(ctx).Model(&model.Video{}).
		Where("user_id = ? AND status <> ?", userId, model.VideoStatusBanned).
		Update("status", model.VideoStatusBanned)
	if res.Error != nil {
		return 0, errors.WithMessage(res.Error, "dao.BanVideosByOwner failed")
	}
	return res.RowsAffected, nil
}

// ListActiveWithStats 推荐流的候选集
func ListActiveWithStats(ctx context.Context, tx *gorm.DB) ([]*model.VideoWithStats, error) {
	var videos []*model.VideoWithStats
	err := tx.WithContext(ctx).Table("videos").
		Select(statsColumns).
		Joins("LEFT JOIN video_stats ON video_stats.video_id = videos.video_id").
		Where("videos.status = ?", model.VideoStatusActive).
		Order("videos.video_id").
		Scan(&videos).Error
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListActiveWithStats failed")
	}
	return videos, nil
}

// ListByOwnerWithStats 作者的全部视频 不区分状态
func ListByOwnerWithStats(ctx context.Context, tx *gorm.DB, userId int64) ([]*model.VideoWithStats, error) {
	var videos []*model.VideoWithStats
	err := tx.WithContext(ctx).Table("videos").
		Select(statsColumns).
		Joins("LEFT JOIN video_stats ON video_stats.video_id = videos.video_id").
		Where("videos.user_id = ?", userId).
		Order("videos.video_id").
		Scan(&videos).Error
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListByOwnerWithStats failed")
	}
	return videos, nil
}

func CountActiveByOwner(ctx context.Context, tx *gorm.DB, userId int64) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Video{}).
		Where("user_id = ? AND status = ?", userId, model.VideoStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, errors.WithMessage(err, "dao.CountActiveByOwner failed")
	}
	return count, nil
}

// SumLikesByOwner 作者全部视频获得的点赞数
func SumLikesByOwner(ctx context.Context, tx *gorm.DB, userId int64) (int64, error) {
	var total int64
	err := tx.WithContext(ctx).Table("video_stats").
		Select("COALESCE(SUM(video_stats.like_count), 0)").
		Joins("JOIN videos ON videos.video_id = video_stats.video_id").
		Where("videos.user_id = ?", userId).
		Scan(&total).Error
	if err != nil {
		return 0, errors.WithMessage(err, "dao.SumLikesByOwner failed")
	}
	return total, nil
}
