package authfunc

import (
	"context"
	"strings"

	"ShortVideo.com/cmd/api/handlers"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/security"
	"github.com/cloudwego/hertz/pkg/app"
)

// Auth 需要登录的路由使用
func Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		RequireLogin(),
	)
}

// Identity 解析Bearer token 没有token时按匿名用户处理 token无效时直接返回401
func Identity(jm *security.JWTManager) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		auth := strings.TrimSpace(string(c.GetHeader("Authorization")))
		if auth == "" {
			c.Next(ctx)
			return
		}
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			handlers.SendResponse(c, errno.TokenInvalidErr, nil)
			c.Abort()
			return
		}
		claims, err := jm.ParseToken(strings.TrimSpace(token))
		if err != nil {
			handlers.SendResponse(c, err, nil)
			c.Abort()
			return
		}
		c.Set(constants.IdentityKey, claims.UserId)
		c.Next(ctx)
	}
}

func RequireLogin() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if handlers.ViewerId(c) == 0 {
			handlers.SendResponse(c, errno.TokenInvalidErr.WithMessage("login required"), nil)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}
