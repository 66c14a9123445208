package model

import "time"

const (
	UserStatusActive = "active"
	UserStatusBanned = "banned"
)

type User struct {
	UserId    int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	UserName  string    `json:"user_name" gorm:"size:64;uniqueIndex"`
	AvatarUrl string    `json:"avatar_url" gorm:"size:255"`
	Bio       string    `json:"bio" gorm:"size:255"`
	Role      string    `json:"role" gorm:"size:20;not null;default:member"`
	Status    string    `json:"status" gorm:"size:20;not null;default:active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
