package model

import "time"

// Follow 关注关系 FollowerId关注FollowingId
type Follow struct {
	FollowerId  int64     `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FollowingId int64     `json:"following_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time `json:"created_at"`
}
