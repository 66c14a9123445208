package handlers

import (
	"context"

	videoservice "ShortVideo.com/cmd/video/service"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

// FeedList 推荐流 page从0开始
func (h *Handler) FeedList(ctx context.Context, c *app.RequestContext) {
	page, err := utils.ParseIntDefault(c.Query("page"), 0)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	size, err := utils.ParseIntDefault(c.Query("size"), constants.DefaultPageSize)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	items, err := h.Feed.GetFeed(ctx, ViewerId(c), page, size)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, items)
}

// CreatorDashboard 当前登录用户的创作者看板
func (h *Handler) CreatorDashboard(ctx context.Context, c *app.RequestContext) {
	dashboard, err := h.Dashboard.GetDashboard(ctx, ViewerId(c))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, dashboard)
}

// UploadVideo multipart表单 file字段为视频文件
func (h *Handler) UploadVideo(ctx context.Context, c *app.RequestContext) {
	fh, err := c.FormFile("file")
	if err != nil {
		SendResponse(c, errno.InvalidArgumentErr.WithMessage("video file is required"), nil)
		return
	}
	duration, err := utils.ParseIntDefault(c.PostForm("duration_seconds"), 0)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	file, err := fh.Open()
	if err != nil {
		SendResponse(c, errno.ErrBind.WithMessage(err.Error()), nil)
		return
	}
	defer file.Close()

	meta := videoservice.UploadMeta{
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		FileName:        fh.Filename,
		ContentType:     fh.Header.Get("Content-Type"),
		Format:          c.PostForm("format"),
		DurationSeconds: int64(duration),
	}
	video, err := h.Video.UploadVideo(ctx, ViewerId(c), meta, file, fh.Size)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, video)
}

func (h *Handler) PublishVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseId("video_id", c.Param("video_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	video, err := h.Video.PublishVideo(ctx, ViewerId(c), videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, video)
}

// VideoStream 直接把对象存储的内容写回客户端
func (h *Handler) VideoStream(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseId("video_id", c.Param("video_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	video, body, size, err := h.Video.OpenStream(ctx, videoId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	contentType := "video/mp4"
	if video.Format != "" {
		contentType = "video/" + video.Format
	}
	c.SetContentType(contentType)
	c.SetBodyStream(body, int(size))
}
