package db

import (
	"context"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateUser 用户名冲突时不插入 返回false
func CreateUser(ctx context.Context, tx *gorm.DB, user *model.User) (bool, error) {
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "dao.CreateUser failed")
	}
	return res.RowsAffected > 0, nil
}

// GetUser 用户不存在时返回NotFoundErr
func GetUser(ctx context.Context, tx *gorm.DB, userId int64) (*model.User, error) {
	var user model.User
	err := tx.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("user not found")
	}
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetUser failed")
	}
	return &user, nil
}

// MGetUsers 批量查询用户 结果按user_id索引
func MGetUsers(ctx context.Context, tx *gorm.DB, userIds []int64) (map[int64]*model.User, error) {
	users := make(map[int64]*model.User, len(userIds))
	if len(userIds) == 0 {
		return users, nil
	}
	var list []*model.User
	if err := tx.WithContext(ctx).Where("user_id IN ?", userIds).Find(&list).Error; err != nil {
		return nil, errors.WithMessage(err, "dao.MGetUsers failed")
	}
	for _, u := range list {
		users[u.UserId] = u
	}
	return users, nil
}

func UpdateRole(ctx context.Context, tx *gorm.DB, userId int64, role string) error {
	if err := tx.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Update("role", role).Error; err != nil {
		return errors.WithMessage(err, "dao.UpdateRole failed")
	}
	return nil
}

// BanUser 账号只做软封禁
func BanUser(ctx context.Context, tx *gorm.DB, userId int64) error {
	err := tx.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ? AND status <> ?", userId, model.UserStatusBanned).
		Update("status", model.UserStatusBanned).Error
	if err != nil {
		return errors.WithMessage(err, "dao.BanUser failed")
	}
	return nil
}
