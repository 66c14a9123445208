package service

import (
	"context"
	"sort"

	relationdb "ShortVideo.com/cmd/relation/dal/db"
	userdb "ShortVideo.com/cmd/user/dal/db"
	"ShortVideo.com/cmd/video/dal/db"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

type VideoAnalytics struct {
	VideoId        int64   `json:"video_id"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	ViewCount      int64   `json:"view_count"`
	LikeCount      int64   `json:"like_count"`
	CommentCount   int64   `json:"comment_count"`
	ShareCount     int64   `json:"share_count"`
	EngagementRate float64 `json:"engagement_rate"`
}

type Dashboard struct {
	UserId         int64             `json:"user_id"`
	TotalVideos    int64             `json:"total_videos"`
	TotalViews     int64             `json:"total_views"`
	TotalLikes     int64             `json:"total_likes"`
	TotalComments  int64             `json:"total_comments"`
	TotalShares    int64             `json:"total_shares"`
	EngagementRate float64           `json:"engagement_rate"`
	FollowerCount  int64             `json:"follower_count"`
	TopVideos      []*VideoAnalytics `json:"top_videos"`
}

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// EngagementRate (likes+comments)/views*100 views为0时返回0
func EngagementRate(likes, comments, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return float64(likes+comments) / float64(views) * 100
}

// GetDashboard 汇总作者全部视频的计数 包括未发布和已封禁的视频
func (s *DashboardService) GetDashboard(ctx context.Context, ownerId int64) (*Dashboard, error) {
	if _, err := userdb.GetUser(ctx, s.db, ownerId); err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "GetDashboard load owner failed: %v", err)
		}
		return nil, err
	}
	videos, err := db.ListByOwnerWithStats(ctx, s.db, ownerId)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetDashboard list videos failed: %v", err)
		return nil, err
	}
	followers, err := relationdb.CountFollowers(ctx, s.db, ownerId)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetDashboard count followers failed: %v", err)
		return nil, err
	}

	dashboard := &Dashboard{
		UserId:        ownerId,
		TotalVideos:   int64(len(videos)),
		FollowerCount: followers,
		TopVideos:     make([]*VideoAnalytics, 0, constants.TopVideoLimit),
	}
	analytics := make([]*VideoAnalytics, 0, len(videos))
	for _, v := range videos {
		dashboard.TotalViews += v.ViewCount
		dashboard.TotalLikes += v.LikeCount
		dashboard.TotalComments += v.CommentCount
		dashboard.TotalShares += v.ShareCount
		analytics = append(analytics, &VideoAnalytics{
			VideoId:        v.VideoId,
			Title:          v.Title,
			Status:         v.Status,
			ViewCount:      v.ViewCount,
			LikeCount:      v.LikeCount,
			CommentCount:   v.CommentCount,
			ShareCount:     v.ShareCount,
			EngagementRate: EngagementRate(v.LikeCount, v.CommentCount, v.ViewCount),
		})
	}
	dashboard.EngagementRate = EngagementRate(dashboard.TotalLikes, dashboard.TotalComments, dashboard.TotalViews)

	sort.SliceStable(analytics, func(i, j int) bool {
		if analytics[i].ViewCount != analytics[j].ViewCount {
			return analytics[i].ViewCount > analytics[j].ViewCount
		}
		return analytics[i].VideoId < analytics[j].VideoId
	})
	if len(analytics) > constants.TopVideoLimit {
		analytics = analytics[:constants.TopVideoLimit]
	}
	dashboard.TopVideos = append(dashboard.TopVideos, analytics...)
	return dashboard, nil
}
