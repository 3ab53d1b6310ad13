package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestWebhookMetricsExportsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewWebhookMetrics(reg)

	metrics.IncReceived()
	metrics.IncReceived()
	metrics.ObserveOutcome(200, 120*time.Millisecond)
	metrics.ObserveOutcome(401, 5*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	received := findFamily(mfs, "webhook_received_total")
	if received == nil {
		t.Fatal("webhook_received_total not found")
	}
	if got := received.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected received=2, got %f", got)
	}

	if got, err := counterValue(mfs, "webhook_outcomes_total", "200"); err != nil {
		t.Fatalf("fetch 200 outcome: %v", err)
	} else if got != 1 {
		t.Fatalf("expected one 200 outcome, got %f", got)
	}

	if got, err := counterValue(mfs, "webhook_outcomes_total", "401"); err != nil {
		t.Fatalf("fetch 401 outcome: %v", err)
	} else if got != 1 {
		t.Fatalf("expected one 401 outcome, got %f", got)
	}

	if sum, err := histogramSum(mfs, "webhook_duration_seconds", "200"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if sum <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", sum)
	}
}

func TestWebhookMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewWebhookMetrics(nil)
	metrics.IncReceived()
	metrics.ObserveOutcome(500, time.Millisecond)
}

func counterValue(mfs []*dto.MetricFamily, name, status string) (float64, error) {
	mf := findFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if hasLabel(metric.GetLabel(), "status", status) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing status=%s", name, status)
}

func histogramSum(mfs []*dto.MetricFamily, name, status string) (float64, error) {
	mf := findFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if hasLabel(metric.GetLabel(), "status", status) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing status=%s", name, status)
}

func findFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func hasLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
