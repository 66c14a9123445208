package router

import (
	"ShortVideo.com/cmd/api/handlers"
	"ShortVideo.com/cmd/api/middleware"
	"ShortVideo.com/cmd/api/router/authfunc"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/security"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register 注册全部路由
func Register(r *route.Engine, h *handlers.Handler, jm *security.JWTManager) {
	r.GET("/metrics", adaptor.HertzHandler(promhttp.Handler()))

	api := r.Group("/api", middleware.Metrics(), authfunc.Identity(jm))
	api.POST("/users", h.CreateUser)
	api.GET("/users/:user_id/profile", h.GetUserProfile)
	api.GET("/feed", middleware.FlowControl(constants.FeedResource), h.FeedList)
	api.GET("/videos/stream/:video_id", h.VideoStream)
	api.POST("/videos/:video_id/view", h.RecordView)
	api.GET("/social/comments/:video_id", h.ListComment)

	auth := api.Group("", authfunc.Auth()...)
	auth.GET("/dashboard", h.CreatorDashboard)
	auth.POST("/videos/upload", h.UploadVideo)
	auth.POST("/videos/:video_id/publish", h.PublishVideo)
	auth.POST("/report", h.CreateReport)

	social := auth.Group("/social")
	social.POST("/like/:video_id", h.LikeAction)
	social.POST("/follow/:user_id", h.RelationAction)
	social.POST("/comment", h.CreateComment)
	social.DELETE("/comment/:comment_id", h.DeleteComment)
	social.POST("/share/:video_id", h.Share)

	admin := auth.Group("/admin")
	admin.GET("/reports", h.ListReports)
	admin.POST("/reports/:report_id/resolve", h.ResolveReport)
	admin.POST("/videos/:video_id/hide", h.HideVideo)
	admin.POST("/videos/:video_id/unhide", h.UnhideVideo)
	admin.POST("/videos/:video_id/reconcile", h.Reconcile)
	admin.POST("/users/:user_id/ban", h.BanUser)
	admin.PUT("/users/:user_id/role", h.SetRole)
}
