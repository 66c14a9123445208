package db

import (
	"context"
	"fmt"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/constants"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplyStatsDelta 单条语句修改计数 结果不会小于0
// 计数行不存在时插入 max(delta, 0)
func ApplyStatsDelta(ctx context.Context, tx *gorm.DB, videoId int64, column string, delta int64) error {
	stats := model.VideoStats{VideoId: videoId}
	initial := delta
	if initial < 0 {
		initial = 0
	}
	switch column {
	case constants.ViewCountColumn:
		stats.ViewCount = initial
	case constants.LikeCountColumn:
		stats.LikeCount = initial
	case constants.CommentCountColumn:
		stats.CommentCount = initial
	case constants.ShareCountColumn:
		stats.ShareCount = initial
	default:
		return fmt.Errorf("dao.ApplyStatsDelta: unknown column %q", column)
	}

	expr := gorm.Expr(fmt.Sprintf("CASE WHEN %[1]s + ? < 0 THEN 0 ELSE %[1]s + ? END", column), delta, delta)
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{column: expr}),
	}).Create(&stats).Error
	if err != nil {
		return errors.WithMessagef(err, "dao.ApplyStatsDelta %s failed", column)
	}
	return nil
}

// GetStats 计数行不存在时返回全零
func GetStats(ctx context.Context, tx *gorm.DB, videoId int64) (*model.VideoStats, error) {
	var stats []*model.VideoStats
	if err := tx.WithContext(ctx).Where("video_id = ?", videoId).Limit(1).Find(&stats).Error; err != nil {
		return nil, errors.WithMessage(err, "dao.GetStats failed")
	}
	if len(stats) == 0 {
		return &model.VideoStats{VideoId: videoId}, nil
	}
	return stats[0], nil
}

// OverwriteCounts 对账时用关系表的真实数量覆盖计数
func OverwriteCounts(ctx context.Context, tx *gorm.DB, videoId, likes, comments int64) error {
	err := tx.WithContext(ctx).Model(&model.VideoStats{}).Where("video_id = ?", videoId).
		Updates(map[string]interface{}{
			constants.LikeCountColumn:    likes,
			constants.CommentCountColumn: comments,
		}).Error
	if err != nil {
		return errors.WithMessage(err, "dao.OverwriteCounts failed")
	}
	return nil
}
