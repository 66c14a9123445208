package service

import (
	"context"
	"strconv"
	"time"

	interactiondb "ShortVideo.com/cmd/interaction/dal/db"
	"ShortVideo.com/cmd/model"
	relationdb "ShortVideo.com/cmd/relation/dal/db"
	userdb "ShortVideo.com/cmd/user/dal/db"
	"ShortVideo.com/cmd/video/dal/db"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

type FeedItem struct {
	VideoId               int64     `json:"video_id"`
	AuthorId              int64     `json:"author_id"`
	AuthorName            string    `json:"author_name"`
	AuthorAvatar          string    `json:"author_avatar"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	ThumbnailUrl          string    `json:"thumbnail_url"`
	VideoUrl              string    `json:"video_url"`
	DurationSeconds       int64     `json:"duration_seconds"`
	ViewCount             int64     `json:"view_count"`
	LikeCount             int64     `json:"like_count"`
	CommentCount          int64     `json:"comment_count"`
	ShareCount            int64     `json:"share_count"`
	Score                 float64   `json:"score"`
	CreatedAt             time.Time `json:"created_at"`
	LikedByCurrentUser    bool      `json:"liked_by_current_user"`
	FollowedByCurrentUser bool      `json:"followed_by_current_user"`
}

// FeedService 每次请求重新打分 读计数不加锁
type FeedService struct {
	db  *gorm.DB
	rnd RandSource
	now func() time.Time
}

// NewFeedService rnd为nil时使用全局随机源
func NewFeedService(db *gorm.DB, rnd RandSource) *FeedService {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &FeedService{db: db, rnd: rnd, now: time.Now}
}

// GetFeed viewerId为0表示匿名访问
func (s *FeedService) GetFeed(ctx context.Context, viewerId int64, page, pageSize int) ([]*FeedItem, error) {
	if page < 0 {
		return nil, errno.InvalidArgumentErr.WithMessage("page must not be negative")
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	start := time.Now()
	candidates, err := db.ListActiveWithStats(ctx, s.db)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetFeed list candidates failed: %v", err)
		return nil, err
	}
	ranked := rankVideos(candidates, s.now(), s.rnd)
	m := metrics.Get()
	m.FeedCandidates.Observe(float64(len(candidates)))
	m.FeedRankDuration.Observe(time.Since(start).Seconds())

	from, to := pageBounds(len(ranked), page, pageSize)
	pageVideos := ranked[from:to]
	items := make([]*FeedItem, 0, len(pageVideos))
	if len(pageVideos) == 0 {
		return items, nil
	}

	videoIds := make([]int64, 0, len(pageVideos))
	authorIds := make([]int64, 0, len(pageVideos))
	for _, sv := range pageVideos {
		videoIds = append(videoIds, sv.video.VideoId)
		authorIds = append(authorIds, sv.video.UserId)
	}
	authors, err := userdb.MGetUsers(ctx, s.db, authorIds)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetFeed load authors failed: %v", err)
		return nil, err
	}
	liked, followed, err := s.viewerFlags(ctx, viewerId, videoIds, authorIds)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetFeed viewer flags failed: %v", err)
		return nil, err
	}

	for _, sv := range pageVideos {
		items = append(items, newFeedItem(sv, authors[sv.video.UserId], liked, followed))
	}
	return items, nil
}

// viewerFlags 两次批量查询 匿名用户全部为false
func (s *FeedService) viewerFlags(ctx context.Context, viewerId int64, videoIds, authorIds []int64) (map[int64]bool, map[int64]bool, error) {
	if viewerId == 0 {
		return map[int64]bool{}, map[int64]bool{}, nil
	}
	liked, err := interactiondb.LikedVideoIds(ctx, s.db, viewerId, videoIds)
	if err != nil {
		return nil, nil, err
	}
	followed, err := relationdb.FollowingSet(ctx, s.db, viewerId, authorIds)
	if err != nil {
		return nil, nil, err
	}
	return liked, followed, nil
}

func newFeedItem(sv *scoredVideo, author *model.User, liked, followed map[int64]bool) *FeedItem {
	v := sv.video
	item := &FeedItem{
		VideoId:               v.VideoId,
		AuthorId:              v.UserId,
		Title:                 v.Title,
		Description:           v.Description,
		ThumbnailUrl:          v.ThumbnailUrl,
		VideoUrl:              StreamUrl(v.VideoId),
		DurationSeconds:       v.DurationSeconds,
		ViewCount:             v.ViewCount,
		LikeCount:             v.LikeCount,
		CommentCount:          v.CommentCount,
		ShareCount:            v.ShareCount,
		Score:                 sv.score,
		CreatedAt:             v.CreatedAt,
		LikedByCurrentUser:    liked[v.VideoId],
		FollowedByCurrentUser: followed[v.UserId],
	}
	if author != nil {
		item.AuthorName = author.UserName
		item.AuthorAvatar = author.AvatarUrl
	}
	return item
}

func StreamUrl(videoId int64) string {
	return constants.StreamUrlPrefix + strconv.FormatInt(videoId, 10)
}
