package handlers

import (
	"context"

	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

type CreateReportParam struct {
	VideoId int64  `json:"video_id"`
	Reason  string `json:"reason"`
}

type ResolveReportParam struct {
	Action string `json:"action"`
}

func (h *Handler) CreateReport(ctx context.Context, c *app.RequestContext) {
	var req CreateReportParam
	if err := c.BindJSON(&req); err != nil {
		SendResponse(c, errno.ErrBind.WithMessage(err.Error()), nil)
		return
	}
	if req.VideoId <= 0 {
		SendResponse(c, errno.InvalidArgumentErr.WithMessage("invalid video_id"), nil)
		return
	}
	report, err := h.Moderation.CreateReport(ctx, ViewerId(c), req.VideoId, req.Reason)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, report)
}

func (h *Handler) ListReports(ctx context.Context, c *app.RequestContext) {
	reports, err := h.Moderation.ListReports(ctx, ViewerId(c), c.Query("status"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, reports)
}

func (h *Handler) ResolveReport(ctx context.Context, c *app.RequestContext) {
	reportId, err := utils.ParseId("report_id", c.Param("report_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	var req ResolveReportParam
	if err = c.BindJSON(&req); err != nil {
		SendResponse(c, errno.ErrBind.WithMessage(err.Error()), nil)
		return
	}
	report, err := h.Moderation.ResolveReport(ctx, ViewerId(c), reportId, req.Action)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, report)
}

func (h *Handler) HideVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseId("video_id", c.Param("video_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, h.Moderation.HideVideo(ctx, ViewerId(c), videoId), nil)
}

func (h *Handler) UnhideVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseId("video_id", c.Param("video_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, h.Moderation.UnhideVideo(ctx, ViewerId(c), videoId), nil)
}

func (h *Handler) BanUser(ctx context.Context, c *app.RequestContext) {
	userId, err := utils.ParseId("user_id", c.Param("user_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	affected, err := h.Moderation.BanUser(ctx, ViewerId(c), userId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{"banned_videos": affected})
}
