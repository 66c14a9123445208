package handlers

import (
	"context"
	"strconv"

	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

type CreateCommentParam struct {
	VideoId  int64  `json:"video_id"`
	Content  string `json:"content"`
	ParentId int64  `json:"parent_id"`
}

type ViewParam struct {
	WatchDuration int64 `json:"watch_duration"`
	Completed     bool  `json:"completed"`
}

// LikeAction 点赞和取消点赞是同一个接口
func (h *Handler) LikeAction(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseId("video_id", c.Param("video_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	liked, err := h.Like.ToggleLike(ctx, ViewerId(c), videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{"liked": liked})
}

func (h *Handler) CreateComment(ctx context.Context, c *app.RequestContext) {
	var req CreateCommentParam
	if err := c.BindJSON(&req); err != nil {
		SendResponse(c, errno.ErrBind.WithMessage(err.Error()), nil)
		return
	}
	if req.VideoId <= 0 {
		SendResponse(c, errno.InvalidArgumentErr.WithMessage("invalid video_id"), nil)
		return
	}
	comment, err := h.Comment.AddComment(ctx, ViewerId(c), req.VideoId, req.Content, req.ParentId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, comment)
}

// ListComment nested=true时返回两级结构
func (h *Handler) ListComment(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseId("video_id", c.Param("video_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	nested := true
	if v := c.Query("nested"); v != "" {
		if nested, err = strconv.ParseBool(v); err != nil {
			SendResponse(c, errno.InvalidArgumentErr.WithMessage("invalid nested"), nil)
			return
		}
	}
	comments, err := h.Comment.ListComments(ctx, videoId, nested)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, comments)
}

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	commentId, err := utils.ParseId("comment_id", c.Param("comment_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	if err = h.Comment.DeleteComment(ctx, ViewerId(c), commentId); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}

func (h *Handler) Share(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseId("video_id", c.Param("video_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	link, err := h.Counter.IncrementShare(ctx, ViewerId(c), videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{"share_link": link})
}

// RecordView 匿名用户也计入观看数 请求体可以为空
func (h *Handler) RecordView(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseId("video_id", c.Param("video_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var req ViewParam
	if len(c.Request.Body()) > 0 {
		if err = c.BindJSON(&req); err != nil {
			SendResponse(c, errno.ErrBind.WithMessage(err.Error()), nil)
			return
		}
	}
	if err = h.Counter.IncrementView(ctx, ViewerId(c), videoId, req.WatchDuration, req.Completed); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}

// Reconcile 管理员手动触发计数校正
func (h *Handler) Reconcile(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseId("video_id", c.Param("video_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	if err = h.User.RequireAdministrator(ctx, ViewerId(c)); err != nil {
		SendResponse(c, err, nil)
		return
	}
	result, err := h.Consistency.ReconcileVideo(ctx, videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, result)
}
