package handlers

import (
	"context"

	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

// RelationAction 关注和取消关注
func (h *Handler) RelationAction(ctx context.Context, c *app.RequestContext) {
	userId, err := utils.ParseId("user_id", c.Param("user_id"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	following, err := h.Relation.ToggleFollow(ctx, ViewerId(c), userId)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{"following": following})
}
