package service

import (
	"context"

	"ShortVideo.com/pkg/metrics"
	"ShortVideo.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// publish 事务提交后发布事件 失败只记录日志
func publish(ctx context.Context, publisher mq.EventPublisher, event *mq.EngagementEvent) {
	metrics.Engagement(event.Type, "ok")
	if publisher == nil {
		return
	}
	if err := publisher.PublishEngagementEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish %s event for video %d failed: %v", event.Type, event.VideoID, err)
	}
}
