package mq

import "context"

// EventPublisher 事件发布接口 发布失败不影响已提交的事务
type EventPublisher interface {
	PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error
	PublishModerationEvent(ctx context.Context, event *ModerationEvent) error
}

// 确保Producer实现EventPublisher接口
var _ EventPublisher = (*Producer)(nil)

var _ EventPublisher = NopPublisher{}

var _ EventPublisher = (*MemoryPublisher)(nil)

// NopPublisher 未配置RabbitMQ时使用
type NopPublisher struct{}

func (NopPublisher) PublishEngagementEvent(context.Context, *EngagementEvent) error { return nil }

func (NopPublisher) PublishModerationEvent(context.Context, *ModerationEvent) error { return nil }
