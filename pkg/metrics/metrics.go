// Package metrics 基于Prometheus的指标收集
//
// 指标分组：
//   - HTTP：请求总数、耗时、处理中请求数
//   - 图书：各操作的结果计数、目录查询耗时、封面上传计数
//   - 熔断器：状态与请求结果
//   - Saga：执行结果、耗时、补偿次数
//   - 消息队列：发布计数
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds、_bytes）。
// 标签只使用有限取值的维度（method、status、operation），不要用user_id、book_id。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// BookOperationsTotal 图书操作总数
	// 标签：operation（create/update/unpublish/delete/detail/mylist）、result（success/not_found/invalid/error）
	BookOperationsTotal *prometheus.CounterVec

	// CatalogQueryDuration 公开目录查询耗时
	CatalogQueryDuration prometheus.Histogram

	// CoverUploadsTotal 封面上传总数
	// 标签：backend（local/s3）、result（success/failure）
	CoverUploadsTotal *prometheus.CounterVec

	// CoverUploadBytes 封面文件大小分布
	CoverUploadBytes prometheus.Histogram

	// CircuitBreakerState 熔断器状态 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// SagaExecutionsTotal Saga执行总数
	// 标签：name、result（success/failure）
	SagaExecutionsTotal *prometheus.CounterVec

	// SagaExecutionDuration Saga执行耗时
	SagaExecutionDuration prometheus.Histogram

	// SagaCompensationsTotal Saga补偿执行总数
	SagaCompensationsTotal prometheus.Counter

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange、routing_key、result
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry
// 可重复调用，只会注册一次
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	BookOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_operations_total",
			Help: "图书操作总数",
		},
		[]string{"operation", "result"},
	)

	CatalogQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "公开目录查询耗时（秒）",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	CoverUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cover_uploads_total",
			Help: "封面上传总数",
		},
		[]string{"backend", "result"},
	)

	CoverUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "cover_upload_bytes",
			Help: "封面文件大小（字节）",
			// 10KB、100KB、500KB、1MB、5MB、10MB
			Buckets: []float64{10 << 10, 100 << 10, 500 << 10, 1 << 20, 5 << 20, 10 << 20},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	SagaExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_executions_total",
			Help: "Saga执行总数",
		},
		[]string{"name", "result"},
	)

	SagaExecutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "saga_execution_duration_seconds",
			Help:    "Saga执行耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	SagaCompensationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saga_compensations_total",
			Help: "Saga补偿执行总数",
		},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)
}

// IncCounter 递增Counter
// 以下辅助函数在InitMetrics之前调用时为空操作
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	if gauge == nil {
		return
	}
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}

// RecordBookOperation 记录图书操作结果
func RecordBookOperation(operation, result string) {
	if BookOperationsTotal == nil {
		return
	}
	BookOperationsTotal.WithLabelValues(operation, result).Inc()
}
