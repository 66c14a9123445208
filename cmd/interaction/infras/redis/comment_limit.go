package redis

import (
	"context"
	"fmt"
	"time"

	"ShortVideo.com/pkg/constants"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// CommentLimiter 评论频率限制
type CommentLimiter interface {
	Allow(ctx context.Context, userId int64) (bool, error)
}

var _ CommentLimiter = (*CommentRateLimiter)(nil)

// CommentRateLimiter 固定窗口计数 每个用户每个窗口最多limit条评论
type CommentRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewCommentRateLimiter(client *redis.Client, limit int64, window time.Duration) *CommentRateLimiter {
	if window <= 0 {
		window = constants.CommentRateWindow
	}
	return &CommentRateLimiter{client: client, limit: limit, window: window}
}

func (l *CommentRateLimiter) Allow(ctx context.Context, userId int64) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	key := fmt.Sprintf(constants.CommentRateKeyTmpl, userId)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, errors.Wrapf(err, "incr %s failed", key)
	}
	if count == 1 {
		if err = l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, errors.Wrapf(err, "expire %s failed", key)
		}
	}
	return count <= l.limit, nil
}
