package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"ShortVideo.com/config"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// eventlog 订阅互动和审核事件并写入日志 用于排查和下游对接调试
func main() {
	config.Init()
	cfg := config.ConfigInfo.RabbitMq

	consumer, err := mq.NewConsumer(mq.BuildURL(cfg.Addr, cfg.Username, cfg.Password))
	if err != nil {
		hlog.Fatalf("init consumer failed: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, queue := range []string{constants.EngagementQueue, constants.ModerationQueue} {
		wg.Add(1)
		go func(queue string) {
			defer wg.Done()
			if err := consumer.Consume(ctx, queue, logEvent); err != nil {
				hlog.Errorf("consume %s stopped: %v", queue, err)
				stop()
			}
		}(queue)
	}
	wg.Wait()
}

func logEvent(ctx context.Context, routingKey string, body []byte) error {
	event, err := mq.DecodeEvent(routingKey, body)
	if err != nil {
		// 无法解析的消息重试也不会成功
		hlog.CtxWarnf(ctx, "drop message: %v", err)
		return nil
	}
	hlog.CtxInfof(ctx, "%s %+v", routingKey, event)
	return nil
}
