package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 服务的全部prometheus指标
type Metrics struct {
	HTTPRequestTotal    *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 点赞 关注 浏览 分享 评论等互动操作
	EngagementTotal *prometheus.CounterVec

	ModerationTotal *prometheus.CounterVec

	EventPublishTotal *prometheus.CounterVec

	FeedRankDuration prometheus.Histogram
	FeedCandidates   prometheus.Histogram
}

var (
	globalMetrics *Metrics
	metricsMutex  sync.Mutex
)

// Get 返回全局指标实例 第一次调用时注册到默认registry
func Get() *Metrics {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	if globalMetrics != nil {
		return globalMetrics
	}

	m := &Metrics{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),

		EngagementTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engagement_operations_total",
			Help: "Total number of engagement operations",
		}, []string{"operation", "result"}),

		ModerationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_actions_total",
			Help: "Total number of moderation actions",
		}, []string{"action"}),

		EventPublishTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "event_publish_total",
			Help: "Total number of event publish operations",
		}, []string{"event_type", "status"}),

		FeedRankDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feed_rank_duration_seconds",
			Help:    "Time spent scoring and sorting feed candidates",
			Buckets: prometheus.DefBuckets,
		}),

		FeedCandidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feed_candidates",
			Help:    "Number of active videos scored per feed request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	m.HTTPRequestTotal = registerOrGet(m.HTTPRequestTotal).(*prometheus.CounterVec)
	m.HTTPRequestDuration = registerOrGet(m.HTTPRequestDuration).(*prometheus.HistogramVec)
	m.EngagementTotal = registerOrGet(m.EngagementTotal).(*prometheus.CounterVec)
	m.ModerationTotal = registerOrGet(m.ModerationTotal).(*prometheus.CounterVec)
	m.EventPublishTotal = registerOrGet(m.EventPublishTotal).(*prometheus.CounterVec)
	m.FeedRankDuration = registerOrGet(m.FeedRankDuration).(prometheus.Histogram)
	m.FeedCandidates = registerOrGet(m.FeedCandidates).(prometheus.Histogram)

	globalMetrics = m
	return m
}

// registerOrGet 已注册时返回已有的collector
func registerOrGet(c prometheus.Collector) prometheus.Collector {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
	}
	return c
}

// Engagement 记录一次互动操作
func Engagement(operation, result string) {
	Get().EngagementTotal.WithLabelValues(operation, result).Inc()
}

func Moderation(action string) {
	Get().ModerationTotal.WithLabelValues(action).Inc()
}

func EventPublished(eventType string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	Get().EventPublishTotal.WithLabelValues(eventType, status).Inc()
}
