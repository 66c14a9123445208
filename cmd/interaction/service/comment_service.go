package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"ShortVideo.com/cmd/interaction/dal/db"
	"ShortVideo.com/cmd/interaction/infras/redis"
	"ShortVideo.com/cmd/model"
	userdb "ShortVideo.com/cmd/user/dal/db"
	videodb "ShortVideo.com/cmd/video/dal/db"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/mq"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

type CommentService struct {
	db        *gorm.DB
	limiter   redis.CommentLimiter
	publisher mq.EventPublisher
}

// NewCommentService limiter可以为空 为空时不限制评论频率
func NewCommentService(db *gorm.DB, limiter redis.CommentLimiter, publisher mq.EventPublisher) *CommentService {
	return &CommentService{db: db, limiter: limiter, publisher: publisher}
}

// CommentNode 嵌套模式下一级评论带有直接回复
type CommentNode struct {
	*model.Comment
	Replies []*CommentNode `json:"replies,omitempty"`
}

// AddComment parentId为0表示一级评论
// 回复的回复挂在一级祖先下 ReplyToCommentId保留真正的回复对象
func (service *CommentService) AddComment(ctx context.Context, userId, videoId int64, content string, parentId int64) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if length := utf8.RuneCountInString(content); length == 0 || length > constants.MaxCommentLength {
		return nil, errno.InvalidArgumentErr.WithMessage("comment must be between 1 and 500 characters")
	}
	if err := service.checkRateLimit(ctx, userId); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		CommentId: utils.GenerateID(),
		VideoId:   videoId,
		UserId:    userId,
		Content:   content,
	}
	err := service.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := userdb.GetUser(ctx, tx, userId); err != nil {
			return err
		}
		if _, err := videodb.GetVideo(ctx, tx, videoId); err != nil {
			return err
		}
		if parentId != 0 {
			parent, err := db.GetComment(ctx, tx, parentId)
			if err != nil {
				return err
			}
			if parent.VideoId != videoId {
				return errno.InvalidArgumentErr.WithMessage("parent comment belongs to another video")
			}
			comment.ParentId = parent.CommentId
			if parent.ParentId != 0 {
				comment.ParentId = parent.ParentId
			}
			comment.ReplyToCommentId = parent.CommentId
		}
		if err := db.CreateComment(ctx, tx, comment); err != nil {
			return err
		}
		return db.ApplyStatsDelta(ctx, tx, videoId, constants.CommentCountColumn, 1)
	})
	if err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "AddComment user=%d video=%d failed: %v", userId, videoId, err)
		}
		return nil, err
	}

	event := mq.NewEngagementEvent(mq.EventCommentAdd, userId, videoId)
	event.CommentID = comment.CommentId
	event.Delta = 1
	publish(ctx, service.publisher, event)
	return comment, nil
}

// checkRateLimit redis不可用时放行
func (service *CommentService) checkRateLimit(ctx context.Context, userId int64) error {
	if service.limiter == nil {
		return nil
	}
	ok, err := service.limiter.Allow(ctx, userId)
	if err != nil {
		hlog.CtxWarnf(ctx, "Failed to check rate limit for user %d: %v", userId, err)
		return nil
	}
	if !ok {
		return errno.TooManyRequestsErr.WithMessage("Comment rate limit exceeded, please try again later")
	}
	return nil
}

// ListComments nested为true时一级评论按时间倒序 回复按时间正序
// 否则返回全部评论 按时间倒序
func (service *CommentService) ListComments(ctx context.Context, videoId int64, nested bool) ([]*CommentNode, error) {
	if _, err := videodb.GetVideo(ctx, service.db, videoId); err != nil {
		return nil, err
	}
	comments, err := db.ListVideoComments(ctx, service.db, videoId)
	if err != nil {
		hlog.CtxErrorf(ctx, "ListComments video=%d failed: %v", videoId, err)
		return nil, err
	}

	nodes := make([]*CommentNode, 0, len(comments))
	if !nested {
		for _, c := range comments {
			nodes = append(nodes, &CommentNode{Comment: c})
		}
		return nodes, nil
	}

	replies := make(map[int64][]*CommentNode)
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		if c.ParentId != 0 {
			replies[c.ParentId] = append(replies[c.ParentId], &CommentNode{Comment: c})
		}
	}
	for _, c := range comments {
		if c.ParentId == 0 {
			nodes = append(nodes, &CommentNode{Comment: c, Replies: replies[c.CommentId]})
		}
	}
	return nodes, nil
}

// DeleteComment 只有作者可以删除 直接回复一起删除
func (service *CommentService) DeleteComment(ctx context.Context, userId, commentId int64) error {
	var deleted *model.Comment
	var removed int64
	err := service.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := db.GetComment(ctx, tx, commentId)
		if err != nil {
			return err
		}
		if comment.UserId != userId {
			return errno.ForbiddenErr.WithMessage("only the author can delete this comment")
		}
		if removed, err = db.DeleteCommentTree(ctx, tx, commentId); err != nil {
			return err
		}
		deleted = comment
		return db.ApplyStatsDelta(ctx, tx, comment.VideoId, constants.CommentCountColumn, -(1 + removed))
	})
	if err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "DeleteComment user=%d comment=%d failed: %v", userId, commentId, err)
		}
		return err
	}

	event := mq.NewEngagementEvent(mq.EventCommentDelete, userId, deleted.VideoId)
	event.CommentID = commentId
	event.Delta = -(1 + removed)
	publish(ctx, service.publisher, event)
	return nil
}
