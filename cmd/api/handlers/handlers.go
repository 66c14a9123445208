package handlers

import (
	interactionservice "ShortVideo.com/cmd/interaction/service"
	moderationservice "ShortVideo.com/cmd/moderation/service"
	relationservice "ShortVideo.com/cmd/relation/service"
	userservice "ShortVideo.com/cmd/user/service"
	videoservice "ShortVideo.com/cmd/video/service"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendResponse pack response 业务错误码映射为HTTP状态码
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	if Err.ErrCode == errno.ServiceErrCode && err != nil {
		hlog.Errorf("request %s failed: %v", c.FullPath(), err)
		Err = errno.ServiceErr.WithMessage("internal server error")
	}
	c.JSON(errno.HTTPStatus(Err), Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

// Handler 持有全部业务服务 由main组装
type Handler struct {
	Like        *interactionservice.LikeService
	Counter     *interactionservice.CounterService
	Comment     *interactionservice.CommentService
	Consistency *interactionservice.DataConsistencyService
	Relation    *relationservice.RelationService
	Moderation  *moderationservice.ModerationService
	Feed        *videoservice.FeedService
	Dashboard   *videoservice.DashboardService
	Video       *videoservice.VideoService
	User        *userservice.UserService
}

// ViewerId 当前请求的用户 匿名访问时为0
func ViewerId(c *app.RequestContext) int64 {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
