package db

import (
	"context"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func CreateComment(ctx context.Context, tx *gorm.DB, comment *model.Comment) error {
	if err := tx.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.WithMessage(err, "dao.CreateComment failed")
	}
	return nil
}

// GetComment 评论不存在时返回NotFoundErr
func GetComment(ctx context.Context, tx *gorm.DB, commentId int64) (*model.Comment, error) {
	var comment model.Comment
	err := tx.WithContext(ctx).Model(&model.Comment{}).Where("comment_id = ?", commentId).Take(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("comment not found")
	}
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetComment failed")
	}
	return &comment, nil
}

// ListVideoComments 视频的全部评论 按时间倒序
func ListVideoComments(ctx context.Context, tx *gorm.DB, videoId int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := tx.WithContext(ctx).Model(&model.Comment{}).
		Where("video_id = ?", videoId).
		Order("created_at DESC").Order("comment_id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListVideoComments failed")
	}
	return comments, nil
}

// DeleteCommentTree 删除评论和它的直接回复 返回删除的回复数量
func DeleteCommentTree(ctx context.Context, tx *gorm.DB, commentId int64) (int64, error) {
	replies := tx.WithContext(ctx).Where("parent_id = ?", commentId).Delete(&model.Comment{})
	if replies.Error != nil {
		return 0, errors.WithMessage(replies.Error, "dao.DeleteReplies failed")
	}
	if err := tx.WithContext(ctx).Where("comment_id = ?", commentId).Delete(&model.Comment{}).Error; err != nil {
		return 0, errors.WithMessage(err, "dao.DeleteComment failed")
	}
	return replies.RowsAffected, nil
}

func CountComments(ctx context.Context, tx *gorm.DB, videoId int64) (int64, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return 0, errors.WithMessage(err, "dao.CountComments failed")
	}
	return count, nil
}
