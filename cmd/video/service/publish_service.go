package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"ShortVideo.com/cmd/model"
	userdb "ShortVideo.com/cmd/user/dal/db"
	"ShortVideo.com/cmd/video/dal/db"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/oss"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadMeta 上传时客户端提供的视频信息
type UploadMeta struct {
	Title           string
	Description     string
	FileName        string
	ContentType     string
	Format          string
	DurationSeconds int64
}

// VideoService 视频的上传 发布和播放
type VideoService struct {
	db    *gorm.DB
	store oss.BlobStore
}

func NewVideoService(db *gorm.DB, store oss.BlobStore) *VideoService {
	return &VideoService{db: db, store: store}
}

// ObjectKey 对象存储中的key 格式为uuid_文件名
func ObjectKey(fileName string) string {
	return uuid.NewString() + "_" + filepath.Base(fileName)
}

// UploadVideo 先写对象存储 再创建pending状态的视频和计数行
func (s *VideoService) UploadVideo(ctx context.Context, ownerId int64, meta UploadMeta, r io.Reader, size int64) (*model.Video, error) {
	meta.Title = strings.TrimSpace(meta.Title)
	if meta.Title == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("title is required")
	}
	if strings.TrimSpace(meta.FileName) == "" || size <= 0 {
		return nil, errno.InvalidArgumentErr.WithMessage("video file is required")
	}
	owner, err := userdb.GetUser(ctx, s.db, ownerId)
	if err != nil {
		return nil, err
	}
	if owner.Status == model.UserStatusBanned {
		return nil, errno.ForbiddenErr.WithMessage("banned users cannot upload videos")
	}

	key := ObjectKey(meta.FileName)
	if err = s.store.Put(ctx, key, r, size, meta.ContentType); err != nil {
		hlog.CtxErrorf(ctx, "UploadVideo put object %s failed: %v", key, err)
		return nil, err
	}

	video := &model.Video{
		VideoId:         utils.GenerateID(),
		UserId:          ownerId,
		ObjectKey:       key,
		Title:           meta.Title,
		Description:     meta.Description,
		DurationSeconds: meta.DurationSeconds,
		Format:          meta.Format,
		FileSize:        size,
		Status:          model.VideoStatusPending,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return db.InsertVideo(ctx, tx, video)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "UploadVideo insert video failed: %v", err)
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			hlog.CtxWarnf(ctx, "UploadVideo cleanup object %s failed: %v", key, delErr)
		}
		return nil, err
	}
	return video, nil
}

// PublishVideo 只有作者可以发布 只允许pending到active
func (s *VideoService) PublishVideo(ctx context.Context, ownerId, videoId int64) (*model.Video, error) {
	var video *model.Video
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if video, err = db.GetVideo(ctx, tx, videoId); err != nil {
			return err
		}
		if video.UserId != ownerId {
			return errno.ForbiddenErr.WithMessage("only the owner can publish this video")
		}
		affected, err := db.UpdateVideoStatus(ctx, tx, videoId, []string{model.VideoStatusPending}, model.VideoStatusActive)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errno.InvalidOperationErr.WithMessage("video is " + video.Status)
		}
		video.Status = model.VideoStatusActive
		return nil
	})
	if err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "PublishVideo failed: %v", err)
		}
		return nil, err
	}
	return video, nil
}

// OpenStream 返回视频内容 调用方负责关闭 已封禁的视频视为不存在
func (s *VideoService) OpenStream(ctx context.Context, videoId int64) (*model.Video, io.ReadCloser, int64, error) {
	video, err := db.GetVideo(ctx, s.db, videoId)
	if err != nil {
		return nil, nil, 0, err
	}
	if video.Status == model.VideoStatusBanned {
		return nil, nil, 0, errno.NotFoundErr.WithMessage("video not found")
	}
	body, size, err := s.store.Get(ctx, video.ObjectKey)
	if err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "OpenStream get object %s failed: %v", video.ObjectKey, err)
		}
		return nil, nil, 0, err
	}
	return video, body, size, nil
}
