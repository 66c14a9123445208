package jaeger

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// InitTracer 设置全局tracer 采样和上报地址可通过JAEGER_*环境变量覆盖
func InitTracer(serviceName string) (io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, errors.Wrap(err, "jaegercfg.FromEnv failed")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}
	if cfg.Sampler.Type == "" {
		cfg.Sampler.Type = jaeger.SamplerTypeConst
		cfg.Sampler.Param = 1
	}
	cfg.Reporter.LogSpans = false

	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer failed")
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}
