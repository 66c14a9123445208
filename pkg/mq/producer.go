package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	// amqp091的Channel不支持并发发布
	mu sync.Mutex
}

// BuildURL 拼接amqp连接地址
func BuildURL(addr, username, password string) string {
	return fmt.Sprintf("amqp://%s:%s@%s/", username, password, addr)
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to open a channel")
	}

	producer := &Producer{
		conn:    conn,
		channel: ch,
	}

	// 声明exchanges和queues
	if err := declareTopology(ch); err != nil {
		producer.Close()
		return nil, errors.Wrap(err, "failed to setup topology")
	}

	return producer, nil
}

// declareTopology 声明exchange和队列 生产者和消费者都会调用
func declareTopology(ch *amqp091.Channel) error {
	bindings := []struct {
		exchange string
		queue    string
	}{
		{constants.EngagementExchange, constants.EngagementQueue},
		{constants.ModerationExchange, constants.ModerationQueue},
	}
	for _, b := range bindings {
		err := ch.ExchangeDeclare(
			b.exchange,
			"topic",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return errors.Wrapf(err, "failed to declare exchange %s", b.exchange)
		}

		_, err = ch.QueueDeclare(
			b.queue,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return errors.Wrapf(err, "failed to declare queue %s", b.queue)
		}

		// 路由键为事件类型 队列接收全部事件
		if err = ch.QueueBind(b.queue, "#", b.exchange, false, nil); err != nil {
			return errors.Wrapf(err, "failed to bind queue %s", b.queue)
		}
	}
	return nil
}

func (p *Producer) publish(ctx context.Context, exchange, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(
		ctx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "failed to publish %s event", routingKey)
	}
	return nil
}

func (p *Producer) PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error {
	err := p.publish(ctx, constants.EngagementExchange, event.Type, event)
	metrics.EventPublished(event.Type, err)
	if err == nil {
		hlog.CtxDebugf(ctx, "Published engagement event: %+v", event)
	}
	return err
}

func (p *Producer) PublishModerationEvent(ctx context.Context, event *ModerationEvent) error {
	err := p.publish(ctx, constants.ModerationExchange, event.Type, event)
	metrics.EventPublished(event.Type, err)
	if err == nil {
		hlog.CtxInfof(ctx, "Published moderation event: %+v", event)
	}
	return err
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
