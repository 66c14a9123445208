package middleware

import (
	"context"
	"sync/atomic"

	"ShortVideo.com/cmd/api/handlers"
	"ShortVideo.com/pkg/errno"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/pkg/errors"
)

var flowEnabled atomic.Bool

// InitFlowRules 初始化sentinel并为resource加载QPS限流规则 qps<=0时不加载规则
func InitFlowRules(resource string, qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return errors.Wrap(err, "sentinel.InitDefault failed")
	}
	if qps <= 0 {
		return nil
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               resource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	if err != nil {
		return errors.Wrap(err, "flow.LoadRules failed")
	}
	flowEnabled.Store(true)
	return nil
}

// FlowControl 超过阈值时返回429 未加载规则时直接放行
func FlowControl(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if !flowEnabled.Load() {
			c.Next(ctx)
			return
		}
		entry, blockErr := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blockErr != nil {
			handlers.SendResponse(c, errno.TooManyRequestsErr, nil)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
