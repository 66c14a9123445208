package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"ShortVideo.com/cmd/api/handlers"
	"ShortVideo.com/cmd/api/middleware"
	"ShortVideo.com/cmd/api/router"
	"ShortVideo.com/cmd/interaction/infras/redis"
	interactionservice "ShortVideo.com/cmd/interaction/service"
	moderationservice "ShortVideo.com/cmd/moderation/service"
	relationservice "ShortVideo.com/cmd/relation/service"
	userservice "ShortVideo.com/cmd/user/service"
	videoservice "ShortVideo.com/cmd/video/service"
	"ShortVideo.com/config"
	"ShortVideo.com/config/jaeger"
	"ShortVideo.com/config/pprof"
	"ShortVideo.com/pkg/cache"
	"ShortVideo.com/pkg/constants"
	"ShortVideo.com/pkg/database"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/mq"
	"ShortVideo.com/pkg/oss"
	"ShortVideo.com/pkg/security"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
)

type infra struct {
	locker    cache.EdgeLocker
	limiter   redis.CommentLimiter
	publisher mq.EventPublisher
	store     oss.BlobStore
	closers   []io.Closer
}

// Init 外部依赖不可用时退化为进程内实现 MySQL除外
func Init(ctx context.Context) *infra {
	config.Init()
	database.Init()
	if err := utils.InitSnowflake(config.ConfigInfo.Server.WorkerId); err != nil {
		panic(err)
	}

	in := &infra{}
	cfg := config.ConfigInfo

	in.locker = cache.NewLocalLocker()
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			hlog.Warnf("redis unavailable, using in-process locks: %v", err)
		} else {
			expiry := time.Duration(cfg.Engine.LockExpirySeconds) * time.Second
			in.locker = cache.NewRedisLocker(client, expiry)
			in.limiter = redis.NewCommentRateLimiter(client, cfg.Engine.CommentsPerMinute, constants.CommentRateWindow)
			in.closers = append(in.closers, client)
		}
	}

	in.publisher = mq.NopPublisher{}
	if cfg.RabbitMq.Addr != "" {
		producer, err := mq.NewProducer(mq.BuildURL(cfg.RabbitMq.Addr, cfg.RabbitMq.Username, cfg.RabbitMq.Password))
		if err != nil {
			hlog.Warnf("rabbitmq unavailable, events are dropped: %v", err)
		} else {
			in.publisher = producer
			in.closers = append(in.closers, producer)
		}
	}

	in.store = oss.NewMemoryStore()
	if cfg.Minio.Endpoint != "" {
		store, err := oss.InitMinio(ctx)
		if err != nil {
			hlog.Warnf("minio unavailable, using in-memory blob store: %v", err)
		} else {
			in.store = store
		}
	}

	if cfg.Jaeger.Enable {
		closer, err := jaeger.InitTracer(cfg.Jaeger.ServiceName)
		if err != nil {
			hlog.Warnf("jaeger init failed: %v", err)
		} else {
			in.closers = append(in.closers, closer)
		}
	}

	if err := middleware.InitFlowRules(constants.FeedResource, cfg.Sentinel.FeedQps); err != nil {
		panic(err)
	}
	pprof.Load(cfg.Server.PprofAddr)
	return in
}

func newHandler(in *infra) *handlers.Handler {
	db := database.DB
	return &handlers.Handler{
		Like:        interactionservice.NewLikeService(db, in.locker, in.publisher),
		Counter:     interactionservice.NewCounterService(db, in.publisher),
		Comment:     interactionservice.NewCommentService(db, in.limiter, in.publisher),
		Consistency: interactionservice.NewDataConsistencyService(db),
		Relation:    relationservice.NewRelationService(db, in.locker, in.publisher),
		Moderation:  moderationservice.NewModerationService(db, in.publisher),
		Feed:        videoservice.NewFeedService(db, nil),
		Dashboard:   videoservice.NewDashboardService(db),
		Video:       videoservice.NewVideoService(db, in.store),
		User:        userservice.NewUserService(db),
	}
}

func main() {
	ctx := context.Background()
	in := Init(ctx)
	defer func() {
		for _, c := range in.closers {
			if err := c.Close(); err != nil {
				hlog.Warnf("close resource failed: %v", err)
			}
		}
	}()

	r := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(1024*1024*1024),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8870", "http://localhost:8888"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"code":    errno.ServiceErrCode,
				"message": fmt.Sprintf("[Recovery] err=%v", err),
			})
		})))

	jm := security.NewJWTManager(config.ConfigInfo.Jwt.Secret, config.ConfigInfo.Jwt.Issuer)
	router.Register(r.Engine, newHandler(in), jm)

	r.Spin()
}
