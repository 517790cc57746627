package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic（重复注册）

	if HTTPRequestsTotal == nil || HTTPRequestDuration == nil || HTTPRequestsInProgress == nil {
		t.Error("HTTP指标未初始化")
	}
	if BookOperationsTotal == nil || CatalogQueryDuration == nil {
		t.Error("图书指标未初始化")
	}
}

// TestCounterVec 测试HTTP请求计数
func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "GET", "path": "/api/v1/books/", "status": "200"}
	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, map[string]string{"method": "POST", "path": "/api/v1/books/create/", "status": "201"})
	IncCounterVec(HTTPRequestsTotal, labels)

	if value := getCounterVecValue(t, HTTPRequestsTotal, labels); value != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", value)
	}
}

// TestRecordBookOperation 测试图书操作计数
func TestRecordBookOperation(t *testing.T) {
	InitMetrics()

	RecordBookOperation("unpublish", "success")
	RecordBookOperation("unpublish", "success")
	RecordBookOperation("unpublish", "not_found")

	success := getCounterVecValue(t, BookOperationsTotal, map[string]string{"operation": "unpublish", "result": "success"})
	if success != 2 {
		t.Errorf("成功计数错误: expected=2, got=%f", success)
	}
	notFound := getCounterVecValue(t, BookOperationsTotal, map[string]string{"operation": "unpublish", "result": "not_found"})
	if notFound != 1 {
		t.Errorf("not_found计数错误: expected=1, got=%f", notFound)
	}
}

// TestGauge 测试处理中请求数
func TestGauge(t *testing.T) {
	InitMetrics()
	SetGauge(HTTPRequestsInProgress, 0)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	if value := getGaugeValue(t, HTTPRequestsInProgress); value != 1 {
		t.Errorf("Gauge值错误: expected=1, got=%f", value)
	}
}

// TestGaugeVec 测试熔断器状态
func TestGaugeVec(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "cover-storage"}, 1)

	if value := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "cover-storage"}); value != 1 {
		t.Errorf("GaugeVec值错误: expected=1, got=%f", value)
	}
}

// TestHistogram 测试目录查询耗时
func TestHistogram(t *testing.T) {
	InitMetrics()

	ObserveHistogram(CatalogQueryDuration, 0.002)
	ObserveHistogram(CatalogQueryDuration, 0.02)
	ObserveHistogram(CatalogQueryDuration, 0.2)

	var metric dto.Metric
	if err := CatalogQueryDuration.Write(&metric); err != nil {
		t.Fatalf("读取Histogram失败: %v", err)
	}
	if count := metric.Histogram.GetSampleCount(); count != 3 {
		t.Errorf("Histogram观测次数错误: expected=3, got=%d", count)
	}
}

func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := counterVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := gaugeVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}
