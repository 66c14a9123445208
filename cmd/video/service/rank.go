package service

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/constants"
)

// RandSource 探索项使用的随机数来源 返回[0,1)
type RandSource interface {
	Float64() float64
}

// BaseScore 不含随机项的基础分 ageHours按整小时截断
func BaseScore(views, likes, shares int64, createdAt, now time.Time) float64 {
	ageHours := math.Floor(now.Sub(createdAt).Hours())
	if ageHours < 0 {
		ageHours = 0
	}
	return float64(views)*constants.ViewWeight +
		float64(likes)*constants.LikeWeight +
		float64(shares)*constants.ShareWeight -
		ageHours*constants.DecayPerHour
}

// Score 基础分加上探索项 结果不小于0
func Score(base, r float64) float64 {
	explore := r * (math.Max(base, 0)*constants.ExploreFactor + constants.ExploreFloor)
	return math.Max(0, base+explore)
}

type scoredVideo struct {
	video *model.VideoWithStats
	score float64
}

// rankVideos 按分数倒序 同分按video_id升序
func rankVideos(videos []*model.VideoWithStats, now time.Time, rnd RandSource) []*scoredVideo {
	scored := make([]*scoredVideo, 0, len(videos))
	for _, v := range videos {
		base := BaseScore(v.ViewCount, v.LikeCount, v.ShareCount, v.CreatedAt, now)
		scored = append(scored, &scoredVideo{video: v, score: Score(base, rnd.Float64())})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].video.VideoId < scored[j].video.VideoId
	})
	return scored
}

// pageBounds 零起始分页 越界返回空区间
func pageBounds(total, page, pageSize int) (int, int) {
	start := page * pageSize
	if start >= total {
		return total, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

// globalRand 使用math/rand的全局源 可并发调用
type globalRand struct{}

func (globalRand) Float64() float64 {
	return rand.Float64()
}
