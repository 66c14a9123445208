package handlers

import (
	"context"

	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

type CreateUserParam struct {
	UserName  string `json:"user_name"`
	AvatarUrl string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

type SetRoleParam struct {
	Role string `json:"role"`
}

func (h *Handler) CreateUser(ctx context.Context, c *app.RequestContext) {
	var req CreateUserParam
	if err := c.BindJSON(&req); err != nil {
		SendResponse(c, errno.ErrBind.WithMessage(err.Error()), nil)
		return
	}
	user, err := h.User.CreateUser(ctx, req.UserName, req.AvatarUrl, req.Bio)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, user)
}

func (h *Handler) GetUserProfile(ctx context.Context, c *app.RequestContext) {
	userId, err := utils.ParseId("user_id", c.Param("user_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	profile, err := h.User.GetUserProfile(ctx, userId, ViewerId(c))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, profile)
}

func (h *Handler) SetRole(ctx context.Context, c *app.RequestContext) {
	userId, err := utils.ParseId("user_id", c.Param("user_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var req SetRoleParam
	if err = c.BindJSON(&req); err != nil {
		SendResponse(c, errno.ErrBind.WithMessage(err.Error()), nil)
		return
	}
	user, err := h.User.SetRole(ctx, ViewerId(c), userId, req.Role)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, user)
}
