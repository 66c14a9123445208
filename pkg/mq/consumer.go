package mq

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

// HandlerFunc 返回错误时消息重新入队
type HandlerFunc func(ctx context.Context, routingKey string, body []byte) error

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to open a channel")
	}
	if err = declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.Wrap(err, "failed to setup topology")
	}
	if err = ch.Qos(32, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.Wrap(err, "failed to set qos")
	}
	return &Consumer{conn: conn, channel: ch}, nil
}

// Consume 阻塞直到ctx取消或连接关闭
func (c *Consumer) Consume(ctx context.Context, queue string, handler HandlerFunc) error {
	msgs, err := c.channel.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to consume queue %s", queue)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.Errorf("delivery channel of %s closed", queue)
			}
			if err := handler(ctx, d.RoutingKey, d.Body); err != nil {
				hlog.CtxWarnf(ctx, "handle %s message failed: %v", queue, err)
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// DecodeEvent 按事件类型解析消息体 返回*EngagementEvent或*ModerationEvent
func DecodeEvent(routingKey string, body []byte) (interface{}, error) {
	var event interface{}
	switch routingKey {
	case EventLike, EventUnlike, EventFollow, EventUnfollow, EventView, EventShare, EventCommentAdd, EventCommentDelete:
		event = &EngagementEvent{}
	case EventReportCreated, EventReportResolved, EventVideoHidden, EventVideoUnhidden, EventUserBanned:
		event = &ModerationEvent{}
	default:
		return nil, errors.Errorf("unknown event type %q", routingKey)
	}
	if err := json.Unmarshal(body, event); err != nil {
		return nil, errors.Wrapf(err, "decode %s event failed", routingKey)
	}
	return event, nil
}
