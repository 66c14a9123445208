package service

import (
	"context"
	"strings"
	"time"

	"ShortVideo.com/cmd/model"
	relationdb "ShortVideo.com/cmd/relation/dal/db"
	"ShortVideo.com/cmd/user/dal/db"
	videodb "ShortVideo.com/cmd/video/dal/db"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

type UserProfile struct {
	UserId                int64     `json:"user_id"`
	UserName              string    `json:"user_name"`
	AvatarUrl             string    `json:"avatar_url"`
	Bio                   string    `json:"bio"`
	Role                  string    `json:"role"`
	Status                string    `json:"status"`
	FollowerCount         int64     `json:"follower_count"`
	FollowingCount        int64     `json:"following_count"`
	VideoCount            int64     `json:"video_count"`
	TotalLikes            int64     `json:"total_likes"`
	FollowedByCurrentUser bool      `json:"followed_by_current_user"`
	CreatedAt             time.Time `json:"created_at"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser 账号由外部身份服务创建后在这里登记 用户名唯一
func (s *UserService) CreateUser(ctx context.Context, userName, avatarUrl, bio string) (*model.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || len(userName) > 64 {
		return nil, errno.InvalidArgumentErr.WithMessage("user name must be between 1 and 64 characters")
	}
	user := &model.User{
		UserId:    utils.GenerateID(),
		UserName:  userName,
		AvatarUrl: avatarUrl,
		Bio:       bio,
		Role:      model.RoleMember,
		Status:    model.UserStatusActive,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := db.CreateUser(ctx, tx, user)
		if err != nil {
			return err
		}
		if !created {
			return errno.ConflictErr.WithMessage("user name already taken")
		}
		return nil
	})
	if err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "CreateUser failed: %v", err)
		}
		return nil, err
	}
	return user, nil
}

// GetUserProfile viewerId为0或等于userId时不查询关注状态
func (s *UserService) GetUserProfile(ctx context.Context, userId, viewerId int64) (*UserProfile, error) {
	user, err := db.GetUser(ctx, s.db, userId)
	if err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "GetUserProfile failed: %v", err)
		}
		return nil, err
	}
	profile := &UserProfile{
		UserId:    user.UserId,
		UserName:  user.UserName,
		AvatarUrl: user.AvatarUrl,
		Bio:       user.Bio,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
	if err = s.fillCounts(ctx, profile); err != nil {
		hlog.CtxErrorf(ctx, "GetUserProfile count failed: %v", err)
		return nil, err
	}
	if viewerId != 0 && viewerId != userId {
		if profile.FollowedByCurrentUser, err = relationdb.IsFollowing(ctx, s.db, viewerId, userId); err != nil {
			hlog.CtxErrorf(ctx, "GetUserProfile follow state failed: %v", err)
			return nil, err
		}
	}
	return profile, nil
}

func (s *UserService) fillCounts(ctx context.Context, profile *UserProfile) error {
	var err error
	if profile.FollowerCount, err = relationdb.CountFollowers(ctx, s.db, profile.UserId); err != nil {
		return err
	}
	if profile.FollowingCount, err = relationdb.CountFollowing(ctx, s.db, profile.UserId); err != nil {
		return err
	}
	if profile.VideoCount, err = videodb.CountActiveByOwner(ctx, s.db, profile.UserId); err != nil {
		return err
	}
	profile.TotalLikes, err = videodb.SumLikesByOwner(ctx, s.db, profile.UserId)
	return err
}

// SetRole 只有管理员可以修改角色 管理员不能取消自己的管理员角色
func (s *UserService) SetRole(ctx context.Context, actorId, userId int64, role string) (*model.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	var user *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := db.GetUser(ctx, tx, actorId)
		if err != nil && !errno.IsErrNo(err) {
			return err
		}
		if err != nil || actor.Role != model.RoleAdministrator {
			return errno.ForbiddenErr.WithMessage("administrator role required")
		}
		if !model.ValidRole(role) {
			return errno.InvalidArgumentErr.WithMessage("Invalid role: " + role)
		}
		if actorId == userId && role != model.RoleAdministrator {
			return errno.InvalidOperationErr.WithMessage("cannot revoke your own administrator role")
		}
		if user, err = db.GetUser(ctx, tx, userId); err != nil {
			return err
		}
		if err = db.UpdateRole(ctx, tx, userId, role); err != nil {
			return err
		}
		user.Role = role
		return nil
	})
	if err != nil {
		if !errno.IsErrNo(err) {
			hlog.CtxErrorf(ctx, "SetRole failed: %v", err)
		}
		return nil, err
	}
	return user, nil
}

// RequireAdministrator 管理员专属接口的权限检查
func (s *UserService) RequireAdministrator(ctx context.Context, userId int64) error {
	user, err := db.GetUser(ctx, s.db, userId)
	if err != nil && !errno.IsErrNo(err) {
		hlog.CtxErrorf(ctx, "RequireAdministrator failed: %v", err)
		return err
	}
	if err != nil || user.Role != model.RoleAdministrator || user.Status == model.UserStatusBanned {
		return errno.ForbiddenErr.WithMessage("administrator role required")
	}
	return nil
}
