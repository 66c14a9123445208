package model

import "time"

// VideoLike 点赞关系 (user_id, video_id)唯一
type VideoLike struct {
	UserId    int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	VideoId   int64     `json:"video_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment ParentId为0表示一级评论 否则指向一级祖先评论
// ReplyToCommentId记录真正回复的评论
type Comment struct {
	CommentId        int64     `json:"comment_id" gorm:"primaryKey;autoIncrement:false"`
	VideoId          int64     `json:"video_id" gorm:"index;not null"`
	UserId           int64     `json:"user_id" gorm:"index;not null"`
	ParentId         int64     `json:"parent_id" gorm:"index;not null;default:0"`
	ReplyToCommentId int64     `json:"reply_to_comment_id" gorm:"not null;default:0"`
	Content          string    `json:"content" gorm:"size:2000;not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
