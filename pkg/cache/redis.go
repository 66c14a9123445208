package cache

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient 创建redis客户端并检查连通性
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "ping redis %s failed", addr)
	}
	hlog.Infof("Connect Redis Success: %s", addr)
	return client, nil
}
