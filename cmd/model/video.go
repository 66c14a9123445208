package model

import "time"

const (
	VideoStatusPending = "pending"
	VideoStatusActive  = "active"
	VideoStatusBanned  = "banned"
)

type Video struct {
	VideoId         int64     `json:"video_id" gorm:"primaryKey;autoIncrement:false"`
	UserId          int64     `json:"user_id" gorm:"index;not null"`
	ObjectKey       string    `json:"-" gorm:"size:255"`
	Title           string    `json:"title" gorm:"size:255"`
	Description     string    `json:"description" gorm:"type:text"`
	ThumbnailUrl    string    `json:"thumbnail_url" gorm:"size:255"`
	DurationSeconds int64     `json:"duration_seconds"`
	Format          string    `json:"format" gorm:"size:32"`
	FileSize        int64     `json:"file_size"`
	Status          string    `json:"status" gorm:"size:20;index;not null;default:pending"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// VideoStats 视频的反规范化计数 只能通过增量语句修改
type VideoStats struct {
	VideoId      int64 `json:"video_id" gorm:"primaryKey;autoIncrement:false"`
	ViewCount    int64 `json:"view_count" gorm:"not null;default:0"`
	LikeCount    int64 `json:"like_count" gorm:"not null;default:0"`
	CommentCount int64 `json:"comment_count" gorm:"not null;default:0"`
	ShareCount   int64 `json:"share_count" gorm:"not null;default:0"`
}

func (VideoStats) TableName() string {
	return "video_stats"
}

// VideoWithStats 视频与计数的联表结果
type VideoWithStats struct {
	Video
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	ShareCount   int64
}
