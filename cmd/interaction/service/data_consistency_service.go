package service

import (
	"context"

	"ShortVideo.com/cmd/interaction/dal/db"
	videodb "ShortVideo.com/cmd/video/dal/db"
	"ShortVideo.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

// DataConsistencyService 用关系表的真实数量校正反规范化计数
type DataConsistencyService struct {
	db *gorm.DB
}

// ConsistencyCheckResult 一致性检查结果
type ConsistencyCheckResult struct {
	VideoId        int64 `json:"video_id"`
	StoredLikes    int64 `json:"stored_likes"`
	ActualLikes    int64 `json:"actual_likes"`
	StoredComments int64 `json:"stored_comments"`
	ActualComments int64 `json:"actual_comments"`
	IsConsistent   bool  `json:"is_consistent"`
	Fixed          bool  `json:"fixed"`
}

func NewDataConsistencyService(db *gorm.DB) *DataConsistencyService {
	return &DataConsistencyService{db: db}
}

// ReconcileVideo 检查并修复单个视频的点赞数和评论数
func (dcs *DataConsistencyService) ReconcileVideo(ctx context.Context, videoId int64) (*ConsistencyCheckResult, error) {
	result := &ConsistencyCheckResult{VideoId: videoId}
	err := dcs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := videodb.GetVideo(ctx, tx, videoId); err != nil {
			return err
		}
		stats, err := db.GetStats(ctx, tx, videoId)
		if err != nil {
			return err
		}
		if result.ActualLikes, err = db.CountLikes(ctx, tx, videoId); err != nil {
			return err
		}
		if result.ActualComments, err = db.CountComments(ctx, tx, videoId); err != nil {
			return err
		}
		result.StoredLikes = stats.LikeCount
		result.StoredComments = stats.CommentCount
		result.IsConsistent = result.StoredLikes == result.ActualLikes && result.StoredComments == result.ActualComments
		if result.IsConsistent {
			return nil
		}

		// 保证计数行存在
		if err = db.ApplyStatsDelta(ctx, tx, videoId, constants.LikeCountColumn, 0); err != nil {
			return err
		}
		if err = db.OverwriteCounts(ctx, tx, videoId, result.ActualLikes, result.ActualComments); err != nil {
			return err
		}
		result.Fixed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Fixed {
		hlog.CtxWarnf(ctx, "video %d counters drifted: likes %d->%d comments %d->%d", videoId,
			result.StoredLikes, result.ActualLikes, result.StoredComments, result.ActualComments)
	}
	return result, nil
}
