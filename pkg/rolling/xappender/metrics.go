package xappender

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/omeyang/xroll/xappender"

	metricRolloverTotal = "xroll.rollover.total"
	metricAppendBytes   = "xroll.append.bytes"
	metricReopenErrors  = "xroll.reopen.errors"

	attrAppender = "appender"
	attrStatus   = "status"

	statusOK       = "ok"
	statusDeferred = "deferred"
)

// appenderMetrics 持有写入器的 OTel 指标。
// nil 接收者上的所有记录方法都是安全的空操作，指标因此是可选能力。
type appenderMetrics struct {
	rollovers   metric.Int64Counter
	appendBytes metric.Int64Counter
	reopenErrs  metric.Int64Counter
}

// newAppenderMetrics 基于给定的 MeterProvider 创建指标集。
// provider 为 nil 时使用全局 MeterProvider。
func newAppenderMetrics(provider metric.MeterProvider) (*appenderMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(instrumentationName)

	rollovers, err := meter.Int64Counter(
		metricRolloverTotal,
		metric.WithDescription("total rollover attempts"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xappender: create rollover counter failed: %w", err)
	}

	appendBytes, err := meter.Int64Counter(
		metricAppendBytes,
		metric.WithDescription("bytes appended to the active file"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("xappender: create append bytes counter failed: %w", err)
	}

	reopenErrs, err := meter.Int64Counter(
		metricReopenErrors,
		metric.WithDescription("failed attempts to reopen the active file"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xappender: create reopen errors counter failed: %w", err)
	}

	return &appenderMetrics{
		rollovers:   rollovers,
		appendBytes: appendBytes,
		reopenErrs:  reopenErrs,
	}, nil
}

func (m *appenderMetrics) recordRollover(name string, deferred bool) {
	if m == nil {
		return
	}
	status := statusOK
	if deferred {
		status = statusDeferred
	}
	m.rollovers.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String(attrAppender, name),
		attribute.String(attrStatus, status),
	))
}

func (m *appenderMetrics) recordAppendBytes(name string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.appendBytes.Add(context.Background(), n, metric.WithAttributes(
		attribute.String(attrAppender, name),
	))
}

func (m *appenderMetrics) recordReopenError(name string) {
	if m == nil {
		return
	}
	m.reopenErrs.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String(attrAppender, name),
	))
}
