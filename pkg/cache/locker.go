package cache

import (
	"context"
	"sync"
	"time"

	"ShortVideo.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// EdgeLocker 按关系键串行化切换操作 返回的函数用于释放锁
type EdgeLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

var (
	_ EdgeLocker = (*RedisLocker)(nil)
	_ EdgeLocker = (*LocalLocker)(nil)
)

// RedisLocker 基于redsync的分布式锁
type RedisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
	tries  int
}

func NewRedisLocker(client *redis.Client, expiry time.Duration) *RedisLocker {
	if expiry <= 0 {
		expiry = 5 * time.Second
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
		tries:  200,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	m := l.rs.NewMutex(key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(l.tries),
		redsync.WithRetryDelay(10*time.Millisecond),
	)
	if err := m.LockContext(ctx); err != nil {
		if errors.Is(err, redsync.ErrFailed) {
			return nil, errno.TooManyRequestsErr.WithMessage("operation in progress, please retry")
		}
		return nil, errors.Wrapf(err, "acquire lock %s failed", key)
	}
	return func() {
		// 锁有过期时间 释放失败只记录日志
		if ok, err := m.UnlockContext(context.Background()); !ok || err != nil {
			hlog.CtxWarnf(ctx, "release lock %s failed: ok=%v err=%v", key, ok, err)
		}
	}, nil
}

// LocalLocker 进程内的按键互斥锁 未配置redis时使用
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	mu   sync.Mutex
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*localEntry)}
}

func (l *LocalLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &localEntry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}, nil
}
