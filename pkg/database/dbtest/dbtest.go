// Package dbtest 为单元测试提供基于sqlite的gorm连接
package dbtest

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New 在临时目录中创建sqlite数据库并迁移全部表
// sqlite只允许一个写连接 所以连接池限制为1
func New(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

// SeedUser 插入一个指定角色的用户
func SeedUser(t testing.TB, db *gorm.DB, userId int64, role string) *model.User {
	t.Helper()
	user := &model.User{
		UserId:   userId,
		UserName: fmt.Sprintf("user%d", userId),
		Role:     role,
		Status:   model.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %d failed: %v", userId, err)
	}
	return user
}

// SeedVideo 插入视频和对应的计数行
func SeedVideo(t testing.TB, db *gorm.DB, videoId, ownerId int64, status string, createdAt time.Time) *model.Video {
	t.Helper()
	video := &model.Video{
		VideoId:   videoId,
		UserId:    ownerId,
		ObjectKey: fmt.Sprintf("%d.mp4", videoId),
		Title:     fmt.Sprintf("video %d", videoId),
		Status:    status,
		CreatedAt: createdAt,
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("seed video %d failed: %v", videoId, err)
	}
	if err := db.Create(&model.VideoStats{VideoId: videoId}).Error; err != nil {
		t.Fatalf("seed stats %d failed: %v", videoId, err)
	}
	return video
}

// SetStats 直接写入计数 用于构造排序和看板场景
func SetStats(t testing.TB, db *gorm.DB, stats model.VideoStats) {
	t.Helper()
	err := db.Model(&model.VideoStats{}).Where("video_id = ?", stats.VideoId).Updates(map[string]interface{}{
		"view_count":    stats.ViewCount,
		"like_count":    stats.LikeCount,
		"comment_count": stats.CommentCount,
		"share_count":   stats.ShareCount,
	}).Error
	if err != nil {
		t.Fatalf("set stats %d failed: %v", stats.VideoId, err)
	}
}

// GetStats 读取计数行
func GetStats(t testing.TB, db *gorm.DB, videoId int64) model.VideoStats {
	t.Helper()
	var stats model.VideoStats
	if err := db.Where("video_id = ?", videoId).Take(&stats).Error; err != nil {
		t.Fatalf("get stats %d failed: %v", videoId, err)
	}
	return stats
}
